package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetAll(ctx context.Context, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role Role) (int64, error)
	CountUnapproved(ctx context.Context) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetByCode(ctx context.Context, code string) (*Course, error)
	GetAll(ctx context.Context) ([]Course, error)
	GetPublished(ctx context.Context) ([]Course, error)
	Count(ctx context.Context) (int64, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *Module) error
	Update(ctx context.Context, module *Module) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Module, error)
	GetByCourseID(ctx context.Context, courseID uint, publishedOnly bool) ([]Module, error)
}

type LabRepository interface {
	Create(ctx context.Context, lab *Lab) error
	Update(ctx context.Context, lab *Lab) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Lab, error)
	GetByModuleID(ctx context.Context, moduleID uint, publishedOnly bool) ([]Lab, error)
	GetByModuleIDs(ctx context.Context, moduleIDs []uint, publishedOnly bool) ([]Lab, error)
	Count(ctx context.Context) (int64, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Task, error)
	GetByLabID(ctx context.Context, labID uint) ([]Task, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	Update(ctx context.Context, question *Question) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Question, error)
	GetByTaskID(ctx context.Context, taskID uint) ([]Question, error)
	GetByLabID(ctx context.Context, labID uint) ([]Question, error)
}

type SubmissionRepository interface {
	Upsert(ctx context.Context, submission *Submission) error
	Update(ctx context.Context, submission *Submission) error
	GetByID(ctx context.Context, id uint) (*Submission, error)
	GetByUserAndQuestion(ctx context.Context, userID, questionID uint) (*Submission, error)
	GetByUserAndLab(ctx context.Context, userID, labID uint) ([]Submission, error)
	GetPendingByLab(ctx context.Context, labID uint) ([]Submission, error)
	CountCorrectByUser(ctx context.Context, userID uint) (int64, error)
	SumPointsByUser(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ProgressRepository interface {
	Upsert(ctx context.Context, progress *LabProgress) error
	GetByUserAndLab(ctx context.Context, userID, labID uint) (*LabProgress, error)
	GetByUserAndLabs(ctx context.Context, userID uint, labIDs []uint) ([]LabProgress, error)
	CountCompletedByUser(ctx context.Context, userID uint) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*Enrollment, error)
	GetByCourseID(ctx context.Context, courseID uint) ([]Enrollment, error)
}

type AchievementRepository interface {
	GetAll(ctx context.Context) ([]Achievement, error)
	GetByKey(ctx context.Context, key string) (*Achievement, error)
	GetUserAchievements(ctx context.Context, userID uint) ([]UserAchievement, error)
	HasUserAchievement(ctx context.Context, userID, achievementID uint) (bool, error)
	CreateUserAchievement(ctx context.Context, ua *UserAchievement) error
}

// ========== USECASES ==========

type AuthUsecase interface {
	Register(ctx context.Context, user *User) error
	Login(ctx context.Context, email, password string) (string, *User, error)
	UpdateProfile(ctx context.Context, user *User) error
	ForgotPassword(ctx context.Context, email string) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
}

type UserUsecase interface {
	ListUsers(ctx context.Context, actorRole Role, page, perPage int) ([]User, int64, error)
	CreateUser(ctx context.Context, actorRole Role, user *User) error
	UpdateUser(ctx context.Context, actorRole Role, user *User) error
	ApproveUser(ctx context.Context, actorRole Role, userID uint) error
	DeleteUser(ctx context.Context, actorRole Role, userID uint) error
	AssignCourse(ctx context.Context, actorRole Role, userID, courseID uint) error
}

type CatalogUsecase interface {
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, courseID uint) error
	ListCourses(ctx context.Context, role Role) ([]Course, error)
	GetCourseDetail(ctx context.Context, courseID uint, role Role) (*Course, error)
	CreateModule(ctx context.Context, module *Module) error
	UpdateModule(ctx context.Context, module *Module) error
	DeleteModule(ctx context.Context, moduleID uint) error
	CreateLab(ctx context.Context, lab *Lab) error
	UpdateLab(ctx context.Context, lab *Lab) error
	DeleteLab(ctx context.Context, labID uint) error
	GetLabDetail(ctx context.Context, labID uint, userID uint, role Role) (*Lab, error)
	CreateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, taskID uint) error
	CreateQuestion(ctx context.Context, question *Question) error
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, questionID uint) error
}

type ProgressUsecase interface {
	GetMyCourse(ctx context.Context, userID uint) (*MyCourseView, error)
	GetLabProgress(ctx context.Context, userID, labID uint) (*LabProgress, error)
	RecomputeLabProgress(ctx context.Context, userID, labID uint) (*LabProgress, error)
}

type SubmissionUsecase interface {
	SubmitAnswer(ctx context.Context, userID, labID, taskID, questionID uint, answer, fileID string) (*SubmissionResult, error)
	GetLabSubmissions(ctx context.Context, userID, labID uint) ([]Submission, error)
	GetPendingUploads(ctx context.Context, labID uint) ([]Submission, error)
	GradeUpload(ctx context.Context, graderRole Role, submissionID uint, correct bool, points int, feedback string) error
}

type AchievementUsecase interface {
	ListCatalog(ctx context.Context) ([]Achievement, error)
	ListForUser(ctx context.Context, userID uint) ([]AchievementWithEarned, error)
	EvaluateAndAward(ctx context.Context, userID uint, trigger TriggerEvent) error
}

type DashboardUsecase interface {
	GetStudentDashboard(ctx context.Context, userID uint) (*StudentDashboardData, error)
	GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error)
}
