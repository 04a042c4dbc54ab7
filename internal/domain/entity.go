package domain

import (
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"not null"`
	Role        Role       `json:"role" gorm:"type:varchar(20);default:'student'"`
	IsApproved  bool       `json:"is_approved" gorm:"default:false"`
	CourseID    *uint      `json:"course_id" gorm:"index"` // assigned course for students
	StreakDays  int        `json:"streak_days" gorm:"default:0"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

type Module struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseID    uint      `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	OrderIndex  int       `json:"order_index" gorm:"default:0"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Labs []Lab `json:"labs,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}

type LabType string

const (
	LabTypeContainer      LabType = "container"
	LabTypeVirtualMachine LabType = "virtual_machine"
	LabTypeSimulation     LabType = "simulation"
)

type Lab struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ModuleID         uint      `json:"module_id" gorm:"not null;index"`
	Title            string    `json:"title" gorm:"not null"`
	Description      string    `json:"description" gorm:"type:text"`
	LabType          LabType   `json:"lab_type" gorm:"type:varchar(20);default:'simulation'"`
	EstimatedMinutes int       `json:"estimated_minutes" gorm:"default:30"`
	PointsPossible   int       `json:"points_possible" gorm:"default:0"`
	OrderIndex       int       `json:"order_index" gorm:"default:0"`
	IsPublished      bool      `json:"is_published" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:LabID;constraint:OnDelete:CASCADE"`
}

type Task struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	LabID      uint      `json:"lab_id" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"not null"`
	OrderIndex int       `json:"order_index" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

type QuestionType string

const (
	QuestionFlag           QuestionType = "flag"
	QuestionText           QuestionType = "text"
	QuestionFileUpload     QuestionType = "file-upload"
	QuestionMultipleChoice QuestionType = "multiple-choice"
)

type Question struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	TaskID         uint         `json:"task_id" gorm:"not null;index"`
	Title          string       `json:"title" gorm:"not null"`
	Type           QuestionType `json:"type" gorm:"type:varchar(20);default:'text'"`
	ExpectedAnswer string       `json:"expected_answer,omitempty" gorm:"type:text"` // blanked before student views
	Options        string       `json:"options,omitempty" gorm:"type:text"` // pipe-separated choices
	Hint           string       `json:"hint,omitempty" gorm:"type:text"`
	AttachmentID   string       `json:"attachment_id,omitempty"` // GridFS file ID
	Points         int          `json:"points" gorm:"default:10"`
	IsRequired     bool         `json:"is_required" gorm:"default:true"`
	OrderIndex     int          `json:"order_index" gorm:"default:0"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

type SubmissionStatus string

const (
	SubmissionGraded  SubmissionStatus = "graded"
	SubmissionPending SubmissionStatus = "pending" // file-upload awaiting manual grading
)

type Submission struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	UserID          uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID      uint             `json:"question_id" gorm:"not null;uniqueIndex:idx_user_question"`
	LabID           uint             `json:"lab_id" gorm:"not null;index"`
	SubmittedAnswer string           `json:"submitted_answer" gorm:"type:text"`
	FileID          string           `json:"file_id,omitempty"` // GridFS file for file-upload questions
	IsCorrect       bool             `json:"is_correct" gorm:"default:false"`
	PointsEarned    int              `json:"points_earned" gorm:"default:0"`
	Status          SubmissionStatus `json:"status" gorm:"type:varchar(20);default:'graded'"`
	Feedback        string           `json:"feedback" gorm:"type:text"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Question Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

type LabStatus string

const (
	LabNotStarted LabStatus = "not_started"
	LabInProgress LabStatus = "in_progress"
	LabCompleted  LabStatus = "completed"
)

// LabProgress is the persisted per-user aggregate of submissions for a lab.
type LabProgress struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lab"`
	LabID        uint       `json:"lab_id" gorm:"not null;uniqueIndex:idx_user_lab"`
	CorrectCount int        `json:"correct_count" gorm:"default:0"`
	PointsEarned int        `json:"points_earned" gorm:"default:0"`
	Percentage   float64    `json:"percentage" gorm:"default:0"` // 0-100
	Status       LabStatus  `json:"status" gorm:"type:varchar(20);default:'not_started'"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type Achievement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Points      int       `json:"points" gorm:"default:0"`
	Rarity      Rarity    `json:"rarity" gorm:"type:varchar(20);default:'common'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type UserAchievement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID uint      `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	EarnedAt      time.Time `json:"earned_at" gorm:"autoCreateTime"`

	// Relations
	Achievement Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
}

// ========== TRIGGER EVENTS ==========

type TriggerEvent string

const (
	TriggerFirstLogin        TriggerEvent = "first_login"
	TriggerCorrectSubmission TriggerEvent = "correct_submission"
	TriggerLabCompleted      TriggerEvent = "lab_completed"
	TriggerLoginStreak       TriggerEvent = "login_streak"
)

// ========== RESPONSE DTOs ==========

// LabWithProgress joins a lab with the requesting student's progress row.
// A student who never submitted has no row; status defaults to not_started.
type LabWithProgress struct {
	Lab
	Status       LabStatus `json:"status"`
	CorrectCount int       `json:"correct_count"`
	PointsEarned int       `json:"points_earned"`
	Percentage   float64   `json:"percentage"`
}

type ModuleWithLabs struct {
	Module
	LabItems []LabWithProgress `json:"labs"`
}

// MyCourseView is the student catalog view: published rows only, with progress.
type MyCourseView struct {
	Course
	ModuleItems    []ModuleWithLabs `json:"modules"`
	CompletedLabs  int              `json:"completed_labs"`
	TotalLabs      int              `json:"total_labs"`
	TotalPoints    int              `json:"total_points"`
	OverallPercent float64          `json:"overall_percent"`
}

// SubmissionResult is returned from SubmitAnswer.
type SubmissionResult struct {
	IsCorrect    bool             `json:"is_correct"`
	PointsEarned int              `json:"points_earned"`
	Status       SubmissionStatus `json:"status"`
	Feedback     string           `json:"feedback"`
	LabStatus    LabStatus        `json:"lab_status"`
	LabPercent   float64          `json:"lab_percent"`
}

type AchievementWithEarned struct {
	Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

type StudentDashboardData struct {
	User           *User                   `json:"user"`
	CourseTitle    string                  `json:"course_title"`
	CompletedLabs  int                     `json:"completed_labs"`
	TotalLabs      int                     `json:"total_labs"`
	TotalPoints    int                     `json:"total_points"`
	OverallPercent float64                 `json:"overall_percent"`
	StreakDays     int                     `json:"streak_days"`
	Achievements   []AchievementWithEarned `json:"achievements"`
}

type AdminDashboardData struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalInstructors int64 `json:"total_instructors"`
	PendingApprovals int64 `json:"pending_approvals"`
	TotalCourses     int64 `json:"total_courses"`
	TotalLabs        int64 `json:"total_labs"`
	TotalSubmissions int64 `json:"total_submissions"`
}
