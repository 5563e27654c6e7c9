package services

import (
	"context"
	"log"
)

// Mailer delivers the verification and password-reset links. Delivery
// infrastructure lives outside this service; LogMailer is the default
// and writes the links to the server log.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, link string) error
	SendPasswordResetEmail(ctx context.Context, email, link string) error
}

type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, email, link string) error {
	log.Printf("verification email for %s: %s", email, link)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(_ context.Context, email, link string) error {
	log.Printf("password reset email for %s: %s", email, link)
	return nil
}
