package usecase_test

import (
	"context"
	"testing"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// ========== REPOSITORY MOCKS ==========

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetAll(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountUnapproved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepo) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepo) GetPublished(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockModuleRepo struct {
	mock.Mock
}

func (m *MockModuleRepo) Create(ctx context.Context, module *domain.Module) error {
	return m.Called(ctx, module).Error(0)
}

func (m *MockModuleRepo) Update(ctx context.Context, module *domain.Module) error {
	return m.Called(ctx, module).Error(0)
}

func (m *MockModuleRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockModuleRepo) GetByID(ctx context.Context, id uint) (*domain.Module, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Module), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockModuleRepo) GetByCourseID(ctx context.Context, courseID uint, publishedOnly bool) ([]domain.Module, error) {
	args := m.Called(ctx, courseID, publishedOnly)
	return args.Get(0).([]domain.Module), args.Error(1)
}

type MockLabRepo struct {
	mock.Mock
}

func (m *MockLabRepo) Create(ctx context.Context, lab *domain.Lab) error {
	return m.Called(ctx, lab).Error(0)
}

func (m *MockLabRepo) Update(ctx context.Context, lab *domain.Lab) error {
	return m.Called(ctx, lab).Error(0)
}

func (m *MockLabRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLabRepo) GetByID(ctx context.Context, id uint) (*domain.Lab, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Lab), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLabRepo) GetByModuleID(ctx context.Context, moduleID uint, publishedOnly bool) ([]domain.Lab, error) {
	args := m.Called(ctx, moduleID, publishedOnly)
	return args.Get(0).([]domain.Lab), args.Error(1)
}

func (m *MockLabRepo) GetByModuleIDs(ctx context.Context, moduleIDs []uint, publishedOnly bool) ([]domain.Lab, error) {
	args := m.Called(ctx, moduleIDs, publishedOnly)
	return args.Get(0).([]domain.Lab), args.Error(1)
}

func (m *MockLabRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepo) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepo) GetByLabID(ctx context.Context, labID uint) ([]domain.Task, error) {
	args := m.Called(ctx, labID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, question *domain.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuestionRepo) Update(ctx context.Context, question *domain.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuestionRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id uint) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepo) GetByTaskID(ctx context.Context, taskID uint) ([]domain.Question, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByLabID(ctx context.Context, labID uint) ([]domain.Question, error) {
	args := m.Called(ctx, labID)
	return args.Get(0).([]domain.Question), args.Error(1)
}

type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Upsert(ctx context.Context, submission *domain.Submission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *MockSubmissionRepo) Update(ctx context.Context, submission *domain.Submission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *MockSubmissionRepo) GetByID(ctx context.Context, id uint) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubmissionRepo) GetByUserAndQuestion(ctx context.Context, userID, questionID uint) (*domain.Submission, error) {
	args := m.Called(ctx, userID, questionID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubmissionRepo) GetByUserAndLab(ctx context.Context, userID, labID uint) ([]domain.Submission, error) {
	args := m.Called(ctx, userID, labID)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) GetPendingByLab(ctx context.Context, labID uint) ([]domain.Submission, error) {
	args := m.Called(ctx, labID)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) CountCorrectByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionRepo) SumPointsByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) Upsert(ctx context.Context, progress *domain.LabProgress) error {
	return m.Called(ctx, progress).Error(0)
}

func (m *MockProgressRepo) GetByUserAndLab(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	args := m.Called(ctx, userID, labID)
	if v := args.Get(0); v != nil {
		return v.(*domain.LabProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepo) GetByUserAndLabs(ctx context.Context, userID uint, labIDs []uint) ([]domain.LabProgress, error) {
	args := m.Called(ctx, userID, labIDs)
	return args.Get(0).([]domain.LabProgress), args.Error(1)
}

func (m *MockProgressRepo) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAchievementRepo struct {
	mock.Mock
}

func (m *MockAchievementRepo) GetAll(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepo) GetByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*domain.Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAchievementRepo) GetUserAchievements(ctx context.Context, userID uint) ([]domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.UserAchievement), args.Error(1)
}

func (m *MockAchievementRepo) HasUserAchievement(ctx context.Context, userID, achievementID uint) (bool, error) {
	args := m.Called(ctx, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepo) CreateUserAchievement(ctx context.Context, ua *domain.UserAchievement) error {
	return m.Called(ctx, ua).Error(0)
}

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return m.Called(ctx, enrollment).Error(0)
}

func (m *MockEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*domain.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEnrollmentRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

// ========== USECASE MOCKS ==========

type MockProgressUsecase struct {
	mock.Mock
}

func (m *MockProgressUsecase) GetMyCourse(ctx context.Context, userID uint) (*domain.MyCourseView, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.MyCourseView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressUsecase) GetLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	args := m.Called(ctx, userID, labID)
	if v := args.Get(0); v != nil {
		return v.(*domain.LabProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressUsecase) RecomputeLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	args := m.Called(ctx, userID, labID)
	if v := args.Get(0); v != nil {
		return v.(*domain.LabProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAchievementUsecase struct {
	mock.Mock
}

func (m *MockAchievementUsecase) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementUsecase) ListForUser(ctx context.Context, userID uint) ([]domain.AchievementWithEarned, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.AchievementWithEarned), args.Error(1)
}

func (m *MockAchievementUsecase) EvaluateAndAward(ctx context.Context, userID uint, trigger domain.TriggerEvent) error {
	return m.Called(ctx, userID, trigger).Error(0)
}
