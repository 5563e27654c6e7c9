package handlers

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strconv"
	"strings"

	"github.com/XanLeMalaaade/bolt-musclecrack/internal/models"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/XanLeMalaaade/bolt-musclecrack/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type authProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type tokenIssuer interface {
	IssueVerification(ctx context.Context, userID int64) (string, error)
	IssueReset(ctx context.Context, userID int64) (string, error)
	ConsumeVerification(ctx context.Context, token string) (int64, error)
	ConsumeReset(ctx context.Context, token string) (int64, error)
}

type AuthHandler struct {
	db          *pgxpool.Pool
	userRepo    authUserStore
	profileRepo authProfileStore
	tokens      tokenIssuer
	mailer      services.Mailer
	jwtSecret   string
	appBaseURL  string
	defaultLang string
}

func NewAuthHandler(
	db *pgxpool.Pool,
	userRepo authUserStore,
	profileRepo authProfileStore,
	tokens tokenIssuer,
	mailer services.Mailer,
	jwtSecret string,
	appBaseURL string,
	defaultLang string,
) *AuthHandler {
	return &AuthHandler{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		appBaseURL:  appBaseURL,
		defaultLang: defaultLang,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	existing, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err == nil && existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to check email"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Name:         req.Name,
	}
	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to start registration transaction"})
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txProfileRepo := repository.NewProfileRepository(tx)

	if err := txUserRepo.CreateUser(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create user"})
	}

	if err := txProfileRepo.CreateEmpty(c.Context(), user.ID, h.defaultLang); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create user profile"})
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to finalize registration"})
	}

	h.dispatchVerification(c.Context(), user)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created, verification email sent",
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)

	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup user"})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid email or password"})
	}

	// Sign-in with an unverified address never yields a session; a
	// fresh verification link goes out instead.
	if !user.EmailVerified {
		h.dispatchVerification(c.Context(), user)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Email not verified",
			"code":  "email_not_verified",
		})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

type verifyEmailRequest struct {
	Code string `json:"code"`
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Code is required"})
	}

	userID, err := h.tokens.ConsumeVerification(c.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Invalid or expired verification code"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to verify email"})
	}

	if err := h.userRepo.MarkEmailVerified(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to verify email"})
	}

	return c.JSON(fiber.Map{"message": "Email verified"})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// The response never discloses whether the address exists.
	if parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err == nil {
		user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(parsedEmail.Address))
		if err == nil && !user.EmailVerified {
			h.dispatchVerification(c.Context(), user)
		}
	}

	return c.JSON(fiber.Map{"message": "If the account exists, a verification email was sent"})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err == nil {
		user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(parsedEmail.Address))
		if err == nil {
			if token, err := h.tokens.IssueReset(c.Context(), user.ID); err == nil {
				link := h.appBaseURL + "/auth?reset_code=" + token
				if err := h.mailer.SendPasswordResetEmail(c.Context(), user.Email, link); err != nil {
					log.Printf("send password reset email: %v", err)
				}
			} else {
				log.Printf("issue password reset token: %v", err)
			}
		}
	}

	return c.JSON(fiber.Map{"message": "If the account exists, a reset email was sent"})
}

type resetPasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	userID, err := h.tokens.ConsumeReset(c.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Invalid or expired reset code"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to reset password"})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := h.userRepo.UpdatePassword(c.Context(), userID, hashed); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to reset password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"email_verified": user.EmailVerified,
		},
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *AuthHandler) dispatchVerification(ctx context.Context, user *models.User) {
	token, err := h.tokens.IssueVerification(ctx, user.ID)
	if err != nil {
		log.Printf("issue verification token: %v", err)
		return
	}
	link := h.appBaseURL + "/email-confirmation?code=" + token
	if err := h.mailer.SendVerificationEmail(ctx, user.Email, link); err != nil {
		log.Printf("send verification email: %v", err)
	}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
