package usecase

import (
	"context"
	"fmt"
	"strings"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/logger"
)

type submissionUsecase struct {
	submissionRepo domain.SubmissionRepository
	questionRepo   domain.QuestionRepository
	taskRepo       domain.TaskRepository
	labRepo        domain.LabRepository
	progress       domain.ProgressUsecase
	achievements   domain.AchievementUsecase
	log            *logger.Logger
}

func NewSubmissionUsecase(
	sr domain.SubmissionRepository,
	qr domain.QuestionRepository,
	tr domain.TaskRepository,
	lr domain.LabRepository,
	pu domain.ProgressUsecase,
	au domain.AchievementUsecase,
	log *logger.Logger,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		submissionRepo: sr,
		questionRepo:   qr,
		taskRepo:       tr,
		labRepo:        lr,
		progress:       pu,
		achievements:   au,
		log:            log.With("usecase", "submission"),
	}
}

// SubmitAnswer grades and records an answer. Resubmitting a question whose
// stored submission is already correct is a no-op returning the stored result;
// otherwise the new answer overwrites the row.
func (uc *submissionUsecase) SubmitAnswer(ctx context.Context, userID, labID, taskID, questionID uint, answer, fileID string) (*domain.SubmissionResult, error) {
	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.TaskID != taskID {
		return nil, fmt.Errorf("question does not belong to task: %w", domain.ErrNotFound)
	}
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.LabID != labID {
		return nil, fmt.Errorf("task does not belong to lab: %w", domain.ErrNotFound)
	}
	lab, err := uc.labRepo.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if !lab.IsPublished {
		// guessed IDs get the same answer as a missing lab
		return nil, fmt.Errorf("lab: %w", domain.ErrNotFound)
	}

	existing, err := uc.submissionRepo.GetByUserAndQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsCorrect {
		prog, err := uc.progress.GetLabProgress(ctx, userID, labID)
		if err != nil {
			return nil, err
		}
		return &domain.SubmissionResult{
			IsCorrect:    true,
			PointsEarned: existing.PointsEarned,
			Status:       existing.Status,
			Feedback:     "Already solved.",
			LabStatus:    prog.Status,
			LabPercent:   prog.Percentage,
		}, nil
	}

	submission := &domain.Submission{
		UserID:          userID,
		QuestionID:      questionID,
		LabID:           labID,
		SubmittedAnswer: answer,
		FileID:          fileID,
		Status:          domain.SubmissionGraded,
	}

	switch question.Type {
	case domain.QuestionFileUpload:
		if fileID == "" {
			return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
		}
		submission.Status = domain.SubmissionPending
		submission.Feedback = "Awaiting instructor review."
	case domain.QuestionMultipleChoice:
		submission.IsCorrect = gradeChoice(answer, question.ExpectedAnswer)
	default: // flag, text
		submission.IsCorrect = gradeText(answer, question.ExpectedAnswer)
	}

	if submission.IsCorrect {
		submission.PointsEarned = question.Points
		submission.Feedback = "Correct!"
	} else if submission.Status != domain.SubmissionPending {
		submission.Feedback = "Incorrect, try again."
		if question.Hint != "" {
			submission.Feedback = "Incorrect. Hint: " + question.Hint
		}
	}

	if err := uc.submissionRepo.Upsert(ctx, submission); err != nil {
		return nil, err
	}

	prog, err := uc.progress.RecomputeLabProgress(ctx, userID, labID)
	if err != nil {
		return nil, err
	}

	uc.fireTriggers(ctx, userID, submission.IsCorrect, prog.Status == domain.LabCompleted)

	return &domain.SubmissionResult{
		IsCorrect:    submission.IsCorrect,
		PointsEarned: submission.PointsEarned,
		Status:       submission.Status,
		Feedback:     submission.Feedback,
		LabStatus:    prog.Status,
		LabPercent:   prog.Percentage,
	}, nil
}

func (uc *submissionUsecase) fireTriggers(ctx context.Context, userID uint, correct, labCompleted bool) {
	if correct {
		if err := uc.achievements.EvaluateAndAward(ctx, userID, domain.TriggerCorrectSubmission); err != nil {
			uc.log.Warn("achievement evaluation failed", "user_id", userID, "err", err)
		}
	}
	if labCompleted {
		if err := uc.achievements.EvaluateAndAward(ctx, userID, domain.TriggerLabCompleted); err != nil {
			uc.log.Warn("achievement evaluation failed", "user_id", userID, "err", err)
		}
	}
}

func (uc *submissionUsecase) GetLabSubmissions(ctx context.Context, userID, labID uint) ([]domain.Submission, error) {
	return uc.submissionRepo.GetByUserAndLab(ctx, userID, labID)
}

func (uc *submissionUsecase) GetPendingUploads(ctx context.Context, labID uint) ([]domain.Submission, error) {
	return uc.submissionRepo.GetPendingByLab(ctx, labID)
}

// GradeUpload resolves a pending file-upload submission. Points are clamped
// to the question's value.
func (uc *submissionUsecase) GradeUpload(ctx context.Context, graderRole domain.Role, submissionID uint, correct bool, points int, feedback string) error {
	if !domain.RolePermissions(graderRole).CanGradeUploads {
		return domain.ErrForbidden
	}

	submission, err := uc.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if submission.Status != domain.SubmissionPending {
		return fmt.Errorf("%w: submission is not pending", domain.ErrConflict)
	}

	if points < 0 {
		points = 0
	}
	if points > submission.Question.Points {
		points = submission.Question.Points
	}
	if !correct {
		points = 0
	}

	submission.IsCorrect = correct
	submission.PointsEarned = points
	submission.Status = domain.SubmissionGraded
	submission.Feedback = feedback

	if err := uc.submissionRepo.Update(ctx, submission); err != nil {
		return err
	}

	prog, err := uc.progress.RecomputeLabProgress(ctx, submission.UserID, submission.LabID)
	if err != nil {
		return err
	}
	uc.fireTriggers(ctx, submission.UserID, correct, prog.Status == domain.LabCompleted)
	return nil
}

// gradeText compares with case and surrounding-whitespace normalization.
func gradeText(answer, expected string) bool {
	return normalize(answer) != "" && normalize(answer) == normalize(expected)
}

// gradeChoice checks membership: expected holds the accepted options
// pipe-separated.
func gradeChoice(answer, expected string) bool {
	got := normalize(answer)
	if got == "" {
		return false
	}
	for _, option := range strings.Split(expected, "|") {
		if normalize(option) == got {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
