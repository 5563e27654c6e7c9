package routes

import (
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/config"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/handlers"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/middleware"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/repository"
	"github.com/XanLeMalaaade/bolt-musclecrack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	mailer := services.NewLogMailer()
	tokenService := services.NewTokenService(tokenRepo, cfg.VerifyTokenTTL, cfg.ResetTokenTTL)
	accountService := services.NewAccountService(db, userRepo)
	profileService := services.NewProfileService(db)
	summaryService := services.NewSummaryService(workoutRepo, nutritionRepo, activityRepo, weightRepo, profileRepo)

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		profileRepo,
		tokenService,
		mailer,
		cfg.JWTSecret,
		cfg.AppBaseURL,
		cfg.DefaultLanguage,
	)
	accountHandler := handlers.NewAccountHandler(accountService)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo)
	nutritionHandler := handlers.NewNutritionHandler(nutritionRepo)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	weightHandler := handlers.NewWeightHandler(weightRepo)
	profileHandler := handlers.NewProfileHandler(userRepo, profileRepo, profileService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	progressionHandler := handlers.NewProgressionHandler(workoutRepo)
	dashboardHandler := handlers.NewDashboardHandler(summaryService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	account := authProtected.Group("/account")
	account.Put("/password", accountHandler.ChangePassword)
	account.Delete("", accountHandler.DeleteAccount)

	workouts := authProtected.Group("/workouts")
	workouts.Get("", workoutHandler.List)
	workouts.Post("", workoutHandler.Create)
	workouts.Get("/:id", workoutHandler.Get)
	workouts.Put("/:id", workoutHandler.Update)
	workouts.Delete("/:id", workoutHandler.Delete)

	authProtected.Get("/nutrition", nutritionHandler.List)
	authProtected.Put("/nutrition", nutritionHandler.Upsert)
	authProtected.Get("/activity", activityHandler.List)
	authProtected.Put("/activity", activityHandler.Upsert)
	authProtected.Get("/weight-history", weightHandler.List)

	profile := authProtected.Group("/profile")
	profile.Get("", profileHandler.Get)
	profile.Put("", profileHandler.Update)
	profile.Put("/weight", profileHandler.UpdateWeight)
	authProtected.Post("/onboarding", profileHandler.CompleteOnboarding)

	authProtected.Get("/exercises", exerciseHandler.List)
	authProtected.Get("/exercises/:id", exerciseHandler.Get)

	progression := authProtected.Group("/progression")
	progression.Get("", progressionHandler.Series)
	progression.Get("/chart", progressionHandler.Chart)

	authProtected.Get("/dashboard", dashboardHandler.Get)

	return registerDocsRoutes(app, cfg)
}
