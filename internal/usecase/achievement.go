package usecase

import (
	"context"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/logger"
)

type achievementUsecase struct {
	achievementRepo domain.AchievementRepository
	submissionRepo  domain.SubmissionRepository
	progressRepo    domain.ProgressRepository
	userRepo        domain.UserRepository
	log             *logger.Logger
}

func NewAchievementUsecase(
	ar domain.AchievementRepository,
	sr domain.SubmissionRepository,
	pr domain.ProgressRepository,
	ur domain.UserRepository,
	log *logger.Logger,
) domain.AchievementUsecase {
	return &achievementUsecase{
		achievementRepo: ar,
		submissionRepo:  sr,
		progressRepo:    pr,
		userRepo:        ur,
		log:             log.With("usecase", "achievement"),
	}
}

func (uc *achievementUsecase) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	return uc.achievementRepo.GetAll(ctx)
}

func (uc *achievementUsecase) ListForUser(ctx context.Context, userID uint) ([]domain.AchievementWithEarned, error) {
	catalog, err := uc.achievementRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := uc.achievementRepo.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedByID := make(map[uint]domain.UserAchievement, len(earned))
	for _, ua := range earned {
		earnedByID[ua.AchievementID] = ua
	}

	result := make([]domain.AchievementWithEarned, 0, len(catalog))
	for _, a := range catalog {
		item := domain.AchievementWithEarned{Achievement: a}
		if ua, ok := earnedByID[a.ID]; ok {
			item.Earned = true
			at := ua.EarnedAt
			item.EarnedAt = &at
		}
		result = append(result, item)
	}
	return result, nil
}

// EvaluateAndAward checks every rule bound to the trigger and awards what
// holds. Awarding twice is a no-op, never an error.
func (uc *achievementUsecase) EvaluateAndAward(ctx context.Context, userID uint, trigger domain.TriggerEvent) error {
	switch trigger {
	case domain.TriggerFirstLogin:
		return uc.award(ctx, userID, "first_login")

	case domain.TriggerCorrectSubmission:
		correct, err := uc.submissionRepo.CountCorrectByUser(ctx, userID)
		if err != nil {
			return err
		}
		if correct >= 1 {
			if err := uc.award(ctx, userID, "first_blood"); err != nil {
				return err
			}
		}
		points, err := uc.submissionRepo.SumPointsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if points >= 500 {
			return uc.award(ctx, userID, "point_hunter")
		}
		return nil

	case domain.TriggerLabCompleted:
		completed, err := uc.progressRepo.CountCompletedByUser(ctx, userID)
		if err != nil {
			return err
		}
		if completed >= 1 {
			if err := uc.award(ctx, userID, "lab_rookie"); err != nil {
				return err
			}
		}
		if completed >= 10 {
			return uc.award(ctx, userID, "lab_master")
		}
		return nil

	case domain.TriggerLoginStreak:
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.StreakDays >= 7 {
			return uc.award(ctx, userID, "week_warrior")
		}
		return nil
	}
	return nil
}

func (uc *achievementUsecase) award(ctx context.Context, userID uint, key string) error {
	achievement, err := uc.achievementRepo.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	has, err := uc.achievementRepo.HasUserAchievement(ctx, userID, achievement.ID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	if err := uc.achievementRepo.CreateUserAchievement(ctx, &domain.UserAchievement{
		UserID:        userID,
		AchievementID: achievement.ID,
	}); err != nil {
		return err
	}
	uc.log.Info("achievement unlocked", "user_id", userID, "key", key)
	return nil
}
