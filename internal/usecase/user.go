package usecase

import (
	"context"
	"fmt"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/utils"
)

type userUsecase struct {
	userRepo       domain.UserRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
}

func NewUserUsecase(ur domain.UserRepository, cr domain.CourseRepository, er domain.EnrollmentRepository) domain.UserUsecase {
	return &userUsecase{userRepo: ur, courseRepo: cr, enrollmentRepo: er}
}

func (uc *userUsecase) ListUsers(ctx context.Context, actorRole domain.Role, page, perPage int) ([]domain.User, int64, error) {
	if !domain.RolePermissions(actorRole).CanManageUsers {
		return nil, 0, domain.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return uc.userRepo.GetAll(ctx, (page-1)*perPage, perPage)
}

func (uc *userUsecase) CreateUser(ctx context.Context, actorRole domain.Role, user *domain.User) error {
	if !domain.CanCreateUser(actorRole, user.Role) {
		return fmt.Errorf("%w: cannot create %s accounts", domain.ErrForbidden, user.Role)
	}

	existing, _ := uc.userRepo.GetByEmail(ctx, user.Email)
	if existing != nil && existing.ID != 0 {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.IsApproved = true // accounts created by staff skip the approval queue
	return uc.userRepo.Create(ctx, user)
}

func (uc *userUsecase) UpdateUser(ctx context.Context, actorRole domain.Role, user *domain.User) error {
	existing, err := uc.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if !domain.CanEditUserData(actorRole, existing.Role) {
		return fmt.Errorf("%w: cannot edit %s accounts", domain.ErrForbidden, existing.Role)
	}

	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.Email != "" && user.Email != existing.Email {
		other, _ := uc.userRepo.GetByEmail(ctx, user.Email)
		if other != nil && other.ID != 0 {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		existing.Email = user.Email
	}
	if user.Password != "" {
		hashed, err := utils.HashPassword(user.Password)
		if err != nil {
			return err
		}
		existing.Password = hashed
	}
	// Role stays immutable after creation.

	return uc.userRepo.Update(ctx, existing)
}

func (uc *userUsecase) ApproveUser(ctx context.Context, actorRole domain.Role, userID uint) error {
	if !domain.RolePermissions(actorRole).CanApproveUsers {
		return domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !domain.CanEditUserData(actorRole, user.Role) {
		return fmt.Errorf("%w: cannot approve %s accounts", domain.ErrForbidden, user.Role)
	}
	user.IsApproved = true
	return uc.userRepo.Update(ctx, user)
}

func (uc *userUsecase) DeleteUser(ctx context.Context, actorRole domain.Role, userID uint) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !domain.CanEditUserData(actorRole, user.Role) {
		return fmt.Errorf("%w: cannot delete %s accounts", domain.ErrForbidden, user.Role)
	}
	return uc.userRepo.Delete(ctx, userID)
}

// AssignCourse sets a student's single assigned course and records the
// enrollment. Only students carry a course assignment.
func (uc *userUsecase) AssignCourse(ctx context.Context, actorRole domain.Role, userID, courseID uint) error {
	if !domain.RolePermissions(actorRole).CanAssignCourse {
		return domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleStudent {
		return fmt.Errorf("%w: only students can be assigned a course", domain.ErrValidation)
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	user.CourseID = &course.ID
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return uc.enrollmentRepo.Create(ctx, &domain.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
	})
}
