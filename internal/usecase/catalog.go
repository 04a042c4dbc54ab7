package usecase

import (
	"context"
	"fmt"

	"cyberlab-backend/internal/domain"
)

type catalogUsecase struct {
	courseRepo   domain.CourseRepository
	moduleRepo   domain.ModuleRepository
	labRepo      domain.LabRepository
	taskRepo     domain.TaskRepository
	questionRepo domain.QuestionRepository
}

func NewCatalogUsecase(
	cr domain.CourseRepository,
	mr domain.ModuleRepository,
	lr domain.LabRepository,
	tr domain.TaskRepository,
	qr domain.QuestionRepository,
) domain.CatalogUsecase {
	return &catalogUsecase{
		courseRepo:   cr,
		moduleRepo:   mr,
		labRepo:      lr,
		taskRepo:     tr,
		questionRepo: qr,
	}
}

// ========== COURSE CRUD ==========

func (uc *catalogUsecase) CreateCourse(ctx context.Context, course *domain.Course) error {
	if course.Code == "" || course.Title == "" {
		return fmt.Errorf("%w: code and title are required", domain.ErrValidation)
	}
	existing, _ := uc.courseRepo.GetByCode(ctx, course.Code)
	if existing != nil && existing.ID != 0 {
		return fmt.Errorf("%w: course code already in use", domain.ErrConflict)
	}
	return uc.courseRepo.Create(ctx, course)
}

func (uc *catalogUsecase) UpdateCourse(ctx context.Context, course *domain.Course) error {
	existing, err := uc.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	if course.Title != "" {
		existing.Title = course.Title
	}
	if course.Description != "" {
		existing.Description = course.Description
	}
	existing.IsPublished = course.IsPublished
	return uc.courseRepo.Update(ctx, existing)
}

func (uc *catalogUsecase) DeleteCourse(ctx context.Context, courseID uint) error {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return uc.courseRepo.Delete(ctx, courseID)
}

func (uc *catalogUsecase) ListCourses(ctx context.Context, role domain.Role) ([]domain.Course, error) {
	if domain.RolePermissions(role).CanViewUnpublished {
		return uc.courseRepo.GetAll(ctx)
	}
	return uc.courseRepo.GetPublished(ctx)
}

// GetCourseDetail assembles the full course tree. Students only see published
// modules and labs and never see expected answers; authors see everything.
func (uc *catalogUsecase) GetCourseDetail(ctx context.Context, courseID uint, role domain.Role) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	unfiltered := domain.RolePermissions(role).CanViewUnpublished
	if !course.IsPublished && !unfiltered {
		return nil, fmt.Errorf("course: %w", domain.ErrNotFound)
	}

	modules, err := uc.moduleRepo.GetByCourseID(ctx, courseID, !unfiltered)
	if err != nil {
		return nil, err
	}

	for i := range modules {
		labs, err := uc.labRepo.GetByModuleID(ctx, modules[i].ID, !unfiltered)
		if err != nil {
			return nil, err
		}
		modules[i].Labs = labs
	}
	course.Modules = modules
	return course, nil
}

// ========== MODULE CRUD ==========

func (uc *catalogUsecase) CreateModule(ctx context.Context, module *domain.Module) error {
	if module.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if _, err := uc.courseRepo.GetByID(ctx, module.CourseID); err != nil {
		return err
	}
	return uc.moduleRepo.Create(ctx, module)
}

func (uc *catalogUsecase) UpdateModule(ctx context.Context, module *domain.Module) error {
	existing, err := uc.moduleRepo.GetByID(ctx, module.ID)
	if err != nil {
		return err
	}
	if module.Title != "" {
		existing.Title = module.Title
	}
	existing.OrderIndex = module.OrderIndex
	existing.IsPublished = module.IsPublished
	return uc.moduleRepo.Update(ctx, existing)
}

func (uc *catalogUsecase) DeleteModule(ctx context.Context, moduleID uint) error {
	if _, err := uc.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return err
	}
	return uc.moduleRepo.Delete(ctx, moduleID)
}

// ========== LAB CRUD ==========

func (uc *catalogUsecase) CreateLab(ctx context.Context, lab *domain.Lab) error {
	if lab.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if lab.LabType == "" {
		lab.LabType = domain.LabTypeSimulation
	}
	switch lab.LabType {
	case domain.LabTypeContainer, domain.LabTypeVirtualMachine, domain.LabTypeSimulation:
	default:
		return fmt.Errorf("%w: invalid lab_type", domain.ErrValidation)
	}
	if _, err := uc.moduleRepo.GetByID(ctx, lab.ModuleID); err != nil {
		return err
	}
	return uc.labRepo.Create(ctx, lab)
}

func (uc *catalogUsecase) UpdateLab(ctx context.Context, lab *domain.Lab) error {
	existing, err := uc.labRepo.GetByID(ctx, lab.ID)
	if err != nil {
		return err
	}
	if lab.Title != "" {
		existing.Title = lab.Title
	}
	if lab.Description != "" {
		existing.Description = lab.Description
	}
	if lab.LabType != "" {
		existing.LabType = lab.LabType
	}
	if lab.EstimatedMinutes > 0 {
		existing.EstimatedMinutes = lab.EstimatedMinutes
	}
	existing.OrderIndex = lab.OrderIndex
	existing.IsPublished = lab.IsPublished
	return uc.labRepo.Update(ctx, existing)
}

func (uc *catalogUsecase) DeleteLab(ctx context.Context, labID uint) error {
	if _, err := uc.labRepo.GetByID(ctx, labID); err != nil {
		return err
	}
	return uc.labRepo.Delete(ctx, labID)
}

// GetLabDetail loads a lab with its tasks and questions. A lab is visible to
// students only when itself, its module and its course are all published.
func (uc *catalogUsecase) GetLabDetail(ctx context.Context, labID uint, userID uint, role domain.Role) (*domain.Lab, error) {
	lab, err := uc.labRepo.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}

	unfiltered := domain.RolePermissions(role).CanViewUnpublished
	if !unfiltered {
		if !lab.IsPublished {
			return nil, fmt.Errorf("lab: %w", domain.ErrNotFound)
		}
		module, err := uc.moduleRepo.GetByID(ctx, lab.ModuleID)
		if err != nil {
			return nil, err
		}
		if !module.IsPublished {
			return nil, fmt.Errorf("lab: %w", domain.ErrNotFound)
		}
		course, err := uc.courseRepo.GetByID(ctx, module.CourseID)
		if err != nil {
			return nil, err
		}
		if !course.IsPublished {
			return nil, fmt.Errorf("lab: %w", domain.ErrNotFound)
		}
	}

	tasks, err := uc.taskRepo.GetByLabID(ctx, labID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		questions, err := uc.questionRepo.GetByTaskID(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		if !unfiltered {
			for j := range questions {
				questions[j].ExpectedAnswer = ""
			}
		}
		tasks[i].Questions = questions
	}
	lab.Tasks = tasks
	return lab, nil
}

// ========== TASK / QUESTION CRUD ==========

func (uc *catalogUsecase) CreateTask(ctx context.Context, task *domain.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if _, err := uc.labRepo.GetByID(ctx, task.LabID); err != nil {
		return err
	}
	return uc.taskRepo.Create(ctx, task)
}

func (uc *catalogUsecase) DeleteTask(ctx context.Context, taskID uint) error {
	if _, err := uc.taskRepo.GetByID(ctx, taskID); err != nil {
		return err
	}
	return uc.taskRepo.Delete(ctx, taskID)
}

func (uc *catalogUsecase) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	switch question.Type {
	case domain.QuestionFlag, domain.QuestionText, domain.QuestionMultipleChoice:
		if question.ExpectedAnswer == "" {
			return fmt.Errorf("%w: expected_answer is required for auto-graded questions", domain.ErrValidation)
		}
	case domain.QuestionFileUpload:
		// manually graded, no expected answer
	default:
		return fmt.Errorf("%w: invalid question type", domain.ErrValidation)
	}
	if question.Points < 0 {
		return fmt.Errorf("%w: points cannot be negative", domain.ErrValidation)
	}
	if _, err := uc.taskRepo.GetByID(ctx, question.TaskID); err != nil {
		return err
	}
	return uc.questionRepo.Create(ctx, question)
}

func (uc *catalogUsecase) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	existing, err := uc.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return err
	}
	if question.Title != "" {
		existing.Title = question.Title
	}
	if question.ExpectedAnswer != "" {
		existing.ExpectedAnswer = question.ExpectedAnswer
	}
	if question.Options != "" {
		existing.Options = question.Options
	}
	if question.Hint != "" {
		existing.Hint = question.Hint
	}
	if question.AttachmentID != "" {
		existing.AttachmentID = question.AttachmentID
	}
	if question.Points > 0 {
		existing.Points = question.Points
	}
	existing.IsRequired = question.IsRequired
	existing.OrderIndex = question.OrderIndex
	return uc.questionRepo.Update(ctx, existing)
}

func (uc *catalogUsecase) DeleteQuestion(ctx context.Context, questionID uint) error {
	if _, err := uc.questionRepo.GetByID(ctx, questionID); err != nil {
		return err
	}
	return uc.questionRepo.Delete(ctx, questionID)
}
