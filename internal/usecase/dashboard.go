package usecase

import (
	"context"
	"errors"

	"cyberlab-backend/internal/domain"
)

type dashboardUsecase struct {
	userRepo       domain.UserRepository
	courseRepo     domain.CourseRepository
	labRepo        domain.LabRepository
	submissionRepo domain.SubmissionRepository
	progress       domain.ProgressUsecase
	achievements   domain.AchievementUsecase
}

func NewDashboardUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	lr domain.LabRepository,
	sr domain.SubmissionRepository,
	pu domain.ProgressUsecase,
	au domain.AchievementUsecase,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		userRepo:       ur,
		courseRepo:     cr,
		labRepo:        lr,
		submissionRepo: sr,
		progress:       pu,
		achievements:   au,
	}
}

func (uc *dashboardUsecase) GetStudentDashboard(ctx context.Context, userID uint) (*domain.StudentDashboardData, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &domain.StudentDashboardData{
		User:       user,
		StreakDays: user.StreakDays,
	}

	course, err := uc.progress.GetMyCourse(ctx, userID)
	switch {
	case err == nil:
		data.CourseTitle = course.Title
		data.CompletedLabs = course.CompletedLabs
		data.TotalLabs = course.TotalLabs
		data.TotalPoints = course.TotalPoints
		data.OverallPercent = course.OverallPercent
	case errors.Is(err, domain.ErrNotAssigned):
		// dashboard still renders without a course
	default:
		return nil, err
	}

	achievements, err := uc.achievements.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Achievements = achievements
	return data, nil
}

func (uc *dashboardUsecase) GetAdminDashboard(ctx context.Context) (*domain.AdminDashboardData, error) {
	data := &domain.AdminDashboardData{}

	students, err := uc.userRepo.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	instructors, err := uc.userRepo.CountByRole(ctx, domain.RoleInstructor)
	if err != nil {
		return nil, err
	}
	staff, err := uc.userRepo.CountByRole(ctx, domain.RoleStaff)
	if err != nil {
		return nil, err
	}
	admins, err := uc.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	data.TotalStudents = students
	data.TotalInstructors = instructors
	data.TotalUsers = students + instructors + staff + admins

	if data.PendingApprovals, err = uc.userRepo.CountUnapproved(ctx); err != nil {
		return nil, err
	}
	if data.TotalCourses, err = uc.courseRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalLabs, err = uc.labRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalSubmissions, err = uc.submissionRepo.Count(ctx); err != nil {
		return nil, err
	}
	return data, nil
}
