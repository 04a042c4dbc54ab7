package usecase

import (
	"context"
	"fmt"
	"time"

	"cyberlab-backend/internal/domain"
)

type progressUsecase struct {
	userRepo       domain.UserRepository
	courseRepo     domain.CourseRepository
	moduleRepo     domain.ModuleRepository
	labRepo        domain.LabRepository
	questionRepo   domain.QuestionRepository
	submissionRepo domain.SubmissionRepository
	progressRepo   domain.ProgressRepository
}

func NewProgressUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	mr domain.ModuleRepository,
	lr domain.LabRepository,
	qr domain.QuestionRepository,
	sr domain.SubmissionRepository,
	pr domain.ProgressRepository,
) domain.ProgressUsecase {
	return &progressUsecase{
		userRepo:       ur,
		courseRepo:     cr,
		moduleRepo:     mr,
		labRepo:        lr,
		questionRepo:   qr,
		submissionRepo: sr,
		progressRepo:   pr,
	}
}

// GetMyCourse resolves the student's assigned course and left-joins each
// published lab with the student's progress row. A missing progress row
// renders as not_started.
func (uc *progressUsecase) GetMyCourse(ctx context.Context, userID uint) (*domain.MyCourseView, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CourseID == nil {
		return nil, domain.ErrNotAssigned
	}

	course, err := uc.courseRepo.GetByID(ctx, *user.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, fmt.Errorf("course: %w", domain.ErrNotFound)
	}

	modules, err := uc.moduleRepo.GetByCourseID(ctx, course.ID, true)
	if err != nil {
		return nil, err
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	labs, err := uc.labRepo.GetByModuleIDs(ctx, moduleIDs, true)
	if err != nil {
		return nil, err
	}

	labIDs := make([]uint, 0, len(labs))
	for _, l := range labs {
		labIDs = append(labIDs, l.ID)
	}
	progressRows, err := uc.progressRepo.GetByUserAndLabs(ctx, userID, labIDs)
	if err != nil {
		return nil, err
	}
	progressByLab := make(map[uint]domain.LabProgress, len(progressRows))
	for _, p := range progressRows {
		progressByLab[p.LabID] = p
	}

	view := &domain.MyCourseView{Course: *course}
	labsByModule := make(map[uint][]domain.LabWithProgress)
	for _, lab := range labs {
		item := domain.LabWithProgress{Lab: lab, Status: domain.LabNotStarted}
		if p, ok := progressByLab[lab.ID]; ok {
			item.Status = p.Status
			item.CorrectCount = p.CorrectCount
			item.PointsEarned = p.PointsEarned
			item.Percentage = p.Percentage
		}
		labsByModule[lab.ModuleID] = append(labsByModule[lab.ModuleID], item)

		view.TotalLabs++
		view.TotalPoints += item.PointsEarned
		if item.Status == domain.LabCompleted {
			view.CompletedLabs++
		}
	}

	for _, module := range modules {
		items := labsByModule[module.ID]
		if items == nil {
			items = []domain.LabWithProgress{}
		}
		view.ModuleItems = append(view.ModuleItems, domain.ModuleWithLabs{
			Module:   module,
			LabItems: items,
		})
	}

	if view.TotalLabs > 0 {
		view.OverallPercent = float64(view.CompletedLabs) / float64(view.TotalLabs) * 100
	}
	return view, nil
}

// GetLabProgress returns the stored aggregate, or a fresh not_started row
// when the student has never submitted.
func (uc *progressUsecase) GetLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	progress, err := uc.progressRepo.GetByUserAndLab(ctx, userID, labID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &domain.LabProgress{UserID: userID, LabID: labID, Status: domain.LabNotStarted}, nil
	}
	return progress, nil
}

// RecomputeLabProgress rebuilds the aggregate from the submission rows.
// Percentage counts required questions only; completed is terminal.
func (uc *progressUsecase) RecomputeLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	questions, err := uc.questionRepo.GetByLabID(ctx, labID)
	if err != nil {
		return nil, err
	}
	submissions, err := uc.submissionRepo.GetByUserAndLab(ctx, userID, labID)
	if err != nil {
		return nil, err
	}

	correctByQuestion := make(map[uint]bool, len(submissions))
	points := 0
	for _, s := range submissions {
		correctByQuestion[s.QuestionID] = s.IsCorrect
		points += s.PointsEarned
	}

	requiredTotal := 0
	requiredCorrect := 0
	correctCount := 0
	for _, q := range questions {
		if correctByQuestion[q.ID] {
			correctCount++
		}
		if q.IsRequired {
			requiredTotal++
			if correctByQuestion[q.ID] {
				requiredCorrect++
			}
		}
	}

	// Labs with no required questions fall back to counting every question,
	// so an all-optional lab can still be finished.
	percentage := 0.0
	completed := false
	switch {
	case requiredTotal > 0:
		percentage = float64(requiredCorrect) / float64(requiredTotal) * 100
		completed = requiredCorrect == requiredTotal
	case len(questions) > 0:
		percentage = float64(correctCount) / float64(len(questions)) * 100
		completed = correctCount == len(questions)
	}
	if percentage > 100 {
		percentage = 100
	}

	status := domain.LabNotStarted
	if len(submissions) > 0 {
		status = domain.LabInProgress
	}
	if completed {
		status = domain.LabCompleted
	}

	existing, err := uc.progressRepo.GetByUserAndLab(ctx, userID, labID)
	if err != nil {
		return nil, err
	}

	progress := &domain.LabProgress{
		UserID:       userID,
		LabID:        labID,
		CorrectCount: correctCount,
		PointsEarned: points,
		Percentage:   percentage,
		Status:       status,
	}
	if existing != nil {
		progress.CompletedAt = existing.CompletedAt
		if existing.Status == domain.LabCompleted {
			// completed is terminal
			progress.Status = domain.LabCompleted
		}
	}
	if progress.Status == domain.LabCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := uc.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
