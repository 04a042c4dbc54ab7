package usecase

import (
	"context"
	"fmt"
	"time"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/logger"
	"cyberlab-backend/pkg/utils"
)

type authUsecase struct {
	userRepo     domain.UserRepository
	achievements domain.AchievementUsecase
	tokens       *utils.TokenMaker
	log          *logger.Logger
}

func NewAuthUsecase(ur domain.UserRepository, au domain.AchievementUsecase, tm *utils.TokenMaker, log *logger.Logger) domain.AuthUsecase {
	return &authUsecase{
		userRepo:     ur,
		achievements: au,
		tokens:       tm,
		log:          log.With("usecase", "auth"),
	}
}

// Register creates a student account awaiting staff approval. Role is fixed at
// registration; privileged roles are only created through user management.
func (uc *authUsecase) Register(ctx context.Context, user *domain.User) error {
	existing, _ := uc.userRepo.GetByEmail(ctx, user.Email)
	if existing != nil && existing.ID != 0 {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Role = domain.RoleStudent
	user.IsApproved = false

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return err
	}
	uc.log.Info("user registered", "user_id", user.ID)
	return nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user.ID == 0 {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if !user.IsApproved {
		return "", nil, fmt.Errorf("%w: account pending approval", domain.ErrForbidden)
	}

	uc.touchLoginStreak(ctx, user)

	if err := uc.achievements.EvaluateAndAward(ctx, user.ID, domain.TriggerFirstLogin); err != nil {
		uc.log.Warn("achievement evaluation failed", "user_id", user.ID, "err", err)
	}
	if err := uc.achievements.EvaluateAndAward(ctx, user.ID, domain.TriggerLoginStreak); err != nil {
		uc.log.Warn("achievement evaluation failed", "user_id", user.ID, "err", err)
	}

	token, err := uc.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// touchLoginStreak advances the consecutive-day login counter: +1 when the
// previous login was yesterday, reset to 1 after a gap, unchanged for repeat
// logins on the same day. Days are calendar dates in the server's zone, not
// 24h windows.
func (uc *authUsecase) touchLoginStreak(ctx context.Context, user *domain.User) {
	now := time.Now()
	today := startOfDay(now)

	switch {
	case user.LastLoginAt == nil:
		user.StreakDays = 1
	case startOfDay(user.LastLoginAt.In(now.Location())).Equal(today):
		// already counted today
	case startOfDay(user.LastLoginAt.In(now.Location())).Equal(today.AddDate(0, 0, -1)):
		user.StreakDays++
	default:
		user.StreakDays = 1
	}

	user.LastLoginAt = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.log.Warn("failed to update login streak", "user_id", user.ID, "err", err)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, user *domain.User) error {
	existing, err := uc.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.Password != "" {
		hashed, err := utils.HashPassword(user.Password)
		if err != nil {
			return err
		}
		existing.Password = hashed
	}

	return uc.userRepo.Update(ctx, existing)
}

// ForgotPassword never reveals whether the email exists.
func (uc *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user.ID == 0 {
		return nil
	}
	uc.log.Info("password reset requested", "user_id", user.ID)
	return nil
}

func (uc *authUsecase) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
