package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"cyberlab-backend/config"
	httpDelivery "cyberlab-backend/internal/delivery/http"
	"cyberlab-backend/internal/domain"
	"cyberlab-backend/internal/migration"
	"cyberlab-backend/internal/repository"
	"cyberlab-backend/internal/usecase"
	"cyberlab-backend/pkg/logger"
	"cyberlab-backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer appLog.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		appLog.Fatal("database connect failed", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			appLog.Error("database close failed", "error", err)
		}
	}()

	if err := migration.Run(db.PG); err != nil {
		appLog.Fatal("migration failed", "error", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.PG)
	courseRepo := repository.NewCourseRepository(db.PG)
	moduleRepo := repository.NewModuleRepository(db.PG)
	labRepo := repository.NewLabRepository(db.PG)
	taskRepo := repository.NewTaskRepository(db.PG)
	questionRepo := repository.NewQuestionRepository(db.PG)
	submissionRepo := repository.NewSubmissionRepository(db.PG)
	progressRepo := repository.NewProgressRepository(db.PG)
	enrollmentRepo := repository.NewEnrollmentRepository(db.PG)
	achievementRepo := repository.NewAchievementRepository(db.PG)

	fileStore, err := repository.NewAttachmentStore(db.Mongo)
	if err != nil {
		appLog.Fatal("attachment store init failed", "error", err)
	}

	// Usecases
	tokens := utils.NewTokenMaker(cfg.JWTSecret)
	achievementUsecase := usecase.NewAchievementUsecase(achievementRepo, submissionRepo, progressRepo, userRepo, appLog)
	authUsecase := usecase.NewAuthUsecase(userRepo, achievementUsecase, tokens, appLog)
	userUsecase := usecase.NewUserUsecase(userRepo, courseRepo, enrollmentRepo)
	catalogUsecase := usecase.NewCatalogUsecase(courseRepo, moduleRepo, labRepo, taskRepo, questionRepo)
	progressUsecase := usecase.NewProgressUsecase(userRepo, courseRepo, moduleRepo, labRepo, questionRepo, submissionRepo, progressRepo)
	submissionUsecase := usecase.NewSubmissionUsecase(submissionRepo, questionRepo, taskRepo, labRepo, progressUsecase, achievementUsecase, appLog)
	dashboardUsecase := usecase.NewDashboardUsecase(userRepo, courseRepo, labRepo, submissionRepo, progressUsecase, achievementUsecase)

	seedAdmin(userRepo, appLog)

	handler := httpDelivery.NewHandler(
		authUsecase,
		userUsecase,
		catalogUsecase,
		progressUsecase,
		submissionUsecase,
		achievementUsecase,
		dashboardUsecase,
		fileStore,
	)

	router := httpDelivery.InitRouter(cfg, handler, tokens)

	appLog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}

// seedAdmin creates the bootstrap admin account on first boot. Credentials
// come from ADMIN_EMAIL / ADMIN_PASSWORD at seed time only.
func seedAdmin(userRepo domain.UserRepository, appLog *logger.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		appLog.Error("admin seed lookup failed", "error", err)
		return
	}
	if existing != nil {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		appLog.Error("admin seed hash failed", "error", err)
		return
	}
	admin := &domain.User{
		Name:       "Administrator",
		Email:      email,
		Password:   hashed,
		Role:       domain.RoleAdmin,
		IsApproved: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		appLog.Error("admin seed failed", "error", err)
		return
	}
	appLog.Info("admin account seeded", "email", email)
}
