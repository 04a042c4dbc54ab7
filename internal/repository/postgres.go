package repository

import (
	"context"
	"errors"
	"fmt"

	"cyberlab-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return &user, err
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return &user, err
}

func (r *userRepo) GetAll(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (r *userRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *userRepo) CountUnapproved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}

// ========== COURSE REPOSITORY ==========

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepo{db}
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Course{ID: id}).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("course: %w", domain.ErrNotFound)
	}
	return &course, err
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("course: %w", domain.ErrNotFound)
	}
	return &course, err
}

func (r *courseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) GetPublished(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).Where("is_published = ?", true).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error
	return count, err
}

// ========== MODULE REPOSITORY ==========

type moduleRepo struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) domain.ModuleRepository {
	return &moduleRepo{db}
}

func (r *moduleRepo) Create(ctx context.Context, module *domain.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *moduleRepo) Update(ctx context.Context, module *domain.Module) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *moduleRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Module{}, id).Error
}

func (r *moduleRepo) GetByID(ctx context.Context, id uint) (*domain.Module, error) {
	var module domain.Module
	err := r.db.WithContext(ctx).First(&module, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("module: %w", domain.ErrNotFound)
	}
	return &module, err
}

func (r *moduleRepo) GetByCourseID(ctx context.Context, courseID uint, publishedOnly bool) ([]domain.Module, error) {
	var modules []domain.Module
	query := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	// order_index ties break on id so listings stay deterministic
	err := query.Order("order_index ASC, id ASC").Find(&modules).Error
	return modules, err
}

// ========== LAB REPOSITORY ==========

type labRepo struct {
	db *gorm.DB
}

func NewLabRepository(db *gorm.DB) domain.LabRepository {
	return &labRepo{db}
}

func (r *labRepo) Create(ctx context.Context, lab *domain.Lab) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

func (r *labRepo) Update(ctx context.Context, lab *domain.Lab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}

func (r *labRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Lab{}, id).Error
}

func (r *labRepo) GetByID(ctx context.Context, id uint) (*domain.Lab, error) {
	var lab domain.Lab
	err := r.db.WithContext(ctx).First(&lab, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lab: %w", domain.ErrNotFound)
	}
	return &lab, err
}

func (r *labRepo) GetByModuleID(ctx context.Context, moduleID uint, publishedOnly bool) ([]domain.Lab, error) {
	return r.GetByModuleIDs(ctx, []uint{moduleID}, publishedOnly)
}

func (r *labRepo) GetByModuleIDs(ctx context.Context, moduleIDs []uint, publishedOnly bool) ([]domain.Lab, error) {
	var labs []domain.Lab
	if len(moduleIDs) == 0 {
		return labs, nil
	}
	query := r.db.WithContext(ctx).Where("module_id IN ?", moduleIDs)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("order_index ASC, id ASC").Find(&labs).Error
	return labs, err
}

func (r *labRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lab{}).Count(&count).Error
	return count, err
}

// ========== TASK REPOSITORY ==========

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &taskRepo{db}
}

func (r *taskRepo) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
	}
	return &task, err
}

func (r *taskRepo) GetByLabID(ctx context.Context, labID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).Where("lab_id = ?", labID).Order("order_index ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

// ========== QUESTION REPOSITORY ==========

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) domain.QuestionRepository {
	return &questionRepo{db}
}

func (r *questionRepo) Create(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepo) Update(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Question{}, id).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id uint) (*domain.Question, error) {
	var question domain.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("question: %w", domain.ErrNotFound)
	}
	return &question, err
}

func (r *questionRepo) GetByTaskID(ctx context.Context, taskID uint) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("order_index ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepo) GetByLabID(ctx context.Context, labID uint) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = questions.task_id").
		Where("tasks.lab_id = ?", labID).
		Order("questions.order_index ASC, questions.id ASC").
		Find(&questions).Error
	return questions, err
}

// ========== SUBMISSION REPOSITORY ==========

type submissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) domain.SubmissionRepository {
	return &submissionRepo{db}
}

// Upsert writes the current submission for a (user, question) pair. Concurrent
// submitters serialize on the unique index; the later writer updates in place.
func (r *submissionRepo) Upsert(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"submitted_answer", "file_id", "is_correct", "points_earned", "status", "feedback", "updated_at",
		}),
	}).Create(submission).Error
}

func (r *submissionRepo) Update(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id uint) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.WithContext(ctx).Preload("Question").First(&submission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("submission: %w", domain.ErrNotFound)
	}
	return &submission, err
}

func (r *submissionRepo) GetByUserAndQuestion(ctx context.Context, userID, questionID uint) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.WithContext(ctx).Where("user_id = ? AND question_id = ?", userID, questionID).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &submission, err
}

func (r *submissionRepo) GetByUserAndLab(ctx context.Context, userID, labID uint) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lab_id = ?", userID, labID).
		Order("question_id ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) GetPendingByLab(ctx context.Context, labID uint) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).
		Where("lab_id = ? AND status = ?", labID, domain.SubmissionPending).
		Preload("User").
		Preload("Question").
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) CountCorrectByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Submission{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *submissionRepo) SumPointsByUser(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Submission{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&total).Error
	return total, err
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Submission{}).Count(&count).Error
	return count, err
}

// ========== PROGRESS REPOSITORY ==========

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) domain.ProgressRepository {
	return &progressRepo{db}
}

func (r *progressRepo) Upsert(ctx context.Context, progress *domain.LabProgress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lab_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"correct_count", "points_earned", "percentage", "status", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (r *progressRepo) GetByUserAndLab(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	var progress domain.LabProgress
	err := r.db.WithContext(ctx).Where("user_id = ? AND lab_id = ?", userID, labID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &progress, err
}

func (r *progressRepo) GetByUserAndLabs(ctx context.Context, userID uint, labIDs []uint) ([]domain.LabProgress, error) {
	var progress []domain.LabProgress
	if len(labIDs) == 0 {
		return progress, nil
	}
	err := r.db.WithContext(ctx).Where("user_id = ? AND lab_id IN ?", userID, labIDs).Find(&progress).Error
	return progress, err
}

func (r *progressRepo) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LabProgress{}).
		Where("user_id = ? AND status = ?", userID, domain.LabCompleted).
		Count(&count).Error
	return count, err
}

// ========== ENROLLMENT REPOSITORY ==========

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) domain.EnrollmentRepository {
	return &enrollmentRepo{db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &enrollment, err
}

func (r *enrollmentRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Preload("User").Find(&enrollments).Error
	return enrollments, err
}

// ========== ACHIEVEMENT REPOSITORY ==========

type achievementRepo struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) domain.AchievementRepository {
	return &achievementRepo{db}
}

func (r *achievementRepo) GetAll(ctx context.Context) ([]domain.Achievement, error) {
	var achievements []domain.Achievement
	err := r.db.WithContext(ctx).Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepo) GetByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	var achievement domain.Achievement
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("achievement: %w", domain.ErrNotFound)
	}
	return &achievement, err
}

func (r *achievementRepo) GetUserAchievements(ctx context.Context, userID uint) ([]domain.UserAchievement, error) {
	var earned []domain.UserAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Achievement").
		Order("earned_at DESC").
		Find(&earned).Error
	return earned, err
}

func (r *achievementRepo) HasUserAchievement(ctx context.Context, userID, achievementID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

// CreateUserAchievement is idempotent: a duplicate (user, achievement) insert
// hits the unique index and is dropped rather than surfaced.
func (r *achievementRepo) CreateUserAchievement(ctx context.Context, ua *domain.UserAchievement) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ua).Error
}
