package usecase_test

import (
	"context"
	"testing"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type submissionFixture struct {
	submissions  *MockSubmissionRepo
	questions    *MockQuestionRepo
	tasks        *MockTaskRepo
	labs         *MockLabRepo
	progress     *MockProgressUsecase
	achievements *MockAchievementUsecase
	uc           domain.SubmissionUsecase
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	f := &submissionFixture{
		submissions:  new(MockSubmissionRepo),
		questions:    new(MockQuestionRepo),
		tasks:        new(MockTaskRepo),
		labs:         new(MockLabRepo),
		progress:     new(MockProgressUsecase),
		achievements: new(MockAchievementUsecase),
	}
	f.uc = usecase.NewSubmissionUsecase(f.submissions, f.questions, f.tasks, f.labs, f.progress, f.achievements, testLogger(t))
	return f
}

func TestSubmitAnswer(t *testing.T) {
	flagQuestion := &domain.Question{
		ID:             10,
		TaskID:         5,
		Type:           domain.QuestionFlag,
		ExpectedAnswer: "CTF{s3cr3t}",
		Points:         50,
		IsRequired:     true,
	}
	task := &domain.Task{ID: 5, LabID: 3}

	t.Run("correct flag with case and whitespace slack", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(10)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress, Percentage: 50}, nil)
		f.achievements.On("EvaluateAndAward", mock.Anything, uint(1), domain.TriggerCorrectSubmission).Return(nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "  ctf{S3CR3T} ", "")
		assert.NoError(t, err)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, 50, result.PointsEarned)
		assert.Equal(t, domain.SubmissionGraded, result.Status)
		assert.Equal(t, domain.LabInProgress, result.LabStatus)
		f.achievements.AssertCalled(t, "EvaluateAndAward", mock.Anything, uint(1), domain.TriggerCorrectSubmission)
	})

	t.Run("incorrect answer earns nothing and surfaces the hint", func(t *testing.T) {
		q := *flagQuestion
		q.Hint = "check the HTTP headers"
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(&q, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(10)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "wrong", "")
		assert.NoError(t, err)
		assert.False(t, result.IsCorrect)
		assert.Equal(t, 0, result.PointsEarned)
		assert.Contains(t, result.Feedback, "check the HTTP headers")
		f.achievements.AssertNotCalled(t, "EvaluateAndAward", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty answer is never correct even with empty expected", func(t *testing.T) {
		q := *flagQuestion
		q.ExpectedAnswer = ""
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(&q, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(10)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "   ", "")
		assert.NoError(t, err)
		assert.False(t, result.IsCorrect)
	})

	t.Run("resubmitting a solved question is a no-op", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(10)).
			Return(&domain.Submission{IsCorrect: true, PointsEarned: 50, Status: domain.SubmissionGraded}, nil)
		f.progress.On("GetLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabCompleted, Percentage: 100}, nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "anything", "")
		assert.NoError(t, err)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, 50, result.PointsEarned)
		assert.Equal(t, "Already solved.", result.Feedback)
		f.submissions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("multiple choice accepts any listed option", func(t *testing.T) {
		q := &domain.Question{
			ID:             11,
			TaskID:         5,
			Type:           domain.QuestionMultipleChoice,
			ExpectedAnswer: "SQL injection|sqli",
			Points:         20,
			IsRequired:     true,
		}
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(11)).Return(q, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(11)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)
		f.achievements.On("EvaluateAndAward", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 11, "SQLI", "")
		assert.NoError(t, err)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, 20, result.PointsEarned)
	})

	t.Run("file upload goes to pending", func(t *testing.T) {
		q := &domain.Question{ID: 12, TaskID: 5, Type: domain.QuestionFileUpload, Points: 100, IsRequired: true}
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(12)).Return(q, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(12)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 12, "", "65f1a2b3c4d5e6f708091011")
		assert.NoError(t, err)
		assert.False(t, result.IsCorrect)
		assert.Equal(t, domain.SubmissionPending, result.Status)
	})

	t.Run("file upload without a file is rejected", func(t *testing.T) {
		q := &domain.Question{ID: 12, TaskID: 5, Type: domain.QuestionFileUpload, Points: 100}
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(12)).Return(q, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(12)).Return(nil, nil)

		_, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 12, "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unpublished labs reject submissions", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(&domain.Task{ID: 5, LabID: 3}, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: false}, nil)

		_, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "CTF{s3cr3t}", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.submissions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("question not under the claimed task is not found", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)

		_, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 99, 10, "x", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("task not under the claimed lab is not found", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(&domain.Task{ID: 5, LabID: 77}, nil)

		_, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "x", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("lab completion fires the completion trigger", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.questions.On("GetByID", mock.Anything, uint(10)).Return(flagQuestion, nil)
		f.tasks.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
		f.labs.On("GetByID", mock.Anything, uint(3)).Return(&domain.Lab{ID: 3, IsPublished: true}, nil)
		f.submissions.On("GetByUserAndQuestion", mock.Anything, uint(1), uint(10)).Return(nil, nil)
		f.submissions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabCompleted, Percentage: 100}, nil)
		f.achievements.On("EvaluateAndAward", mock.Anything, uint(1), domain.TriggerCorrectSubmission).Return(nil)
		f.achievements.On("EvaluateAndAward", mock.Anything, uint(1), domain.TriggerLabCompleted).Return(nil)

		result, err := f.uc.SubmitAnswer(context.Background(), 1, 3, 5, 10, "CTF{s3cr3t}", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.LabCompleted, result.LabStatus)
		f.achievements.AssertCalled(t, "EvaluateAndAward", mock.Anything, uint(1), domain.TriggerLabCompleted)
	})
}

func TestGradeUpload(t *testing.T) {
	pending := func() *domain.Submission {
		return &domain.Submission{
			ID:         42,
			UserID:     1,
			QuestionID: 12,
			LabID:      3,
			Status:     domain.SubmissionPending,
			Question:   domain.Question{ID: 12, Points: 100},
		}
	}

	t.Run("students cannot grade", func(t *testing.T) {
		f := newSubmissionFixture(t)
		err := f.uc.GradeUpload(context.Background(), domain.RoleStudent, 42, true, 100, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("points are clamped to the question value", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.submissions.On("GetByID", mock.Anything, uint(42)).Return(pending(), nil)
		f.submissions.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
			return s.PointsEarned == 100 && s.IsCorrect && s.Status == domain.SubmissionGraded
		})).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)
		f.achievements.On("EvaluateAndAward", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := f.uc.GradeUpload(context.Background(), domain.RoleInstructor, 42, true, 500, "good writeup")
		assert.NoError(t, err)
		f.submissions.AssertExpectations(t)
	})

	t.Run("incorrect grading zeroes the points", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.submissions.On("GetByID", mock.Anything, uint(42)).Return(pending(), nil)
		f.submissions.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Submission) bool {
			return s.PointsEarned == 0 && !s.IsCorrect
		})).Return(nil)
		f.progress.On("RecomputeLabProgress", mock.Anything, uint(1), uint(3)).
			Return(&domain.LabProgress{Status: domain.LabInProgress}, nil)

		err := f.uc.GradeUpload(context.Background(), domain.RoleAdmin, 42, false, 80, "missing evidence")
		assert.NoError(t, err)
	})

	t.Run("already graded submission is a conflict", func(t *testing.T) {
		graded := pending()
		graded.Status = domain.SubmissionGraded
		f := newSubmissionFixture(t)
		f.submissions.On("GetByID", mock.Anything, uint(42)).Return(graded, nil)

		err := f.uc.GradeUpload(context.Background(), domain.RoleInstructor, 42, true, 50, "")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
