package http

import (
	"cyberlab-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== COURSE HANDLERS ==========

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.CatalogUsecase.ListCourses(c.Request.Context(), getUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"courses": courses, "count": len(courses)})
}

func (h *Handler) GetCourseDetail(c *gin.Context) {
	courseID, ok := paramID(c, "id")
	if !ok {
		return
	}
	course, err := h.CatalogUsecase.GetCourseDetail(c.Request.Context(), courseID, getUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, course)
}

func (h *Handler) GetMyCourse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.ProgressUsecase.GetMyCourse(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req struct {
		Code        string `json:"code" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		IsPublished bool   `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course := domain.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	if err := h.CatalogUsecase.CreateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	courseID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IsPublished bool   `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course := domain.Course{
		ID:          courseID,
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	if err := h.CatalogUsecase.UpdateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "course updated"})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	courseID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogUsecase.DeleteCourse(c.Request.Context(), courseID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "course deleted"})
}

// ========== MODULE HANDLERS ==========

func (h *Handler) CreateModule(c *gin.Context) {
	var req struct {
		CourseID    uint   `json:"course_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		OrderIndex  int    `json:"order_index"`
		IsPublished bool   `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	module := domain.Module{
		CourseID:    req.CourseID,
		Title:       req.Title,
		OrderIndex:  req.OrderIndex,
		IsPublished: req.IsPublished,
	}
	if err := h.CatalogUsecase.CreateModule(c.Request.Context(), &module); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, module)
}

func (h *Handler) UpdateModule(c *gin.Context) {
	moduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		OrderIndex  int    `json:"order_index"`
		IsPublished bool   `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	module := domain.Module{
		ID:          moduleID,
		Title:       req.Title,
		OrderIndex:  req.OrderIndex,
		IsPublished: req.IsPublished,
	}
	if err := h.CatalogUsecase.UpdateModule(c.Request.Context(), &module); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "module updated"})
}

func (h *Handler) DeleteModule(c *gin.Context) {
	moduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogUsecase.DeleteModule(c.Request.Context(), moduleID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "module deleted"})
}

// ========== LAB HANDLERS ==========

func (h *Handler) GetLabDetail(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	lab, err := h.CatalogUsecase.GetLabDetail(c.Request.Context(), labID, userID, getUserRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, lab)
}

func (h *Handler) CreateLab(c *gin.Context) {
	var req struct {
		ModuleID         uint           `json:"module_id" binding:"required"`
		Title            string         `json:"title" binding:"required"`
		Description      string         `json:"description"`
		LabType          domain.LabType `json:"lab_type" binding:"omitempty,oneof=container virtual_machine simulation"`
		EstimatedMinutes int            `json:"estimated_minutes"`
		PointsPossible   int            `json:"points_possible"`
		OrderIndex       int            `json:"order_index"`
		IsPublished      bool           `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lab := domain.Lab{
		ModuleID:         req.ModuleID,
		Title:            req.Title,
		Description:      req.Description,
		LabType:          req.LabType,
		EstimatedMinutes: req.EstimatedMinutes,
		PointsPossible:   req.PointsPossible,
		OrderIndex:       req.OrderIndex,
		IsPublished:      req.IsPublished,
	}
	if err := h.CatalogUsecase.CreateLab(c.Request.Context(), &lab); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, lab)
}

func (h *Handler) UpdateLab(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title            string         `json:"title"`
		Description      string         `json:"description"`
		LabType          domain.LabType `json:"lab_type" binding:"omitempty,oneof=container virtual_machine simulation"`
		EstimatedMinutes int            `json:"estimated_minutes"`
		OrderIndex       int            `json:"order_index"`
		IsPublished      bool           `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lab := domain.Lab{
		ID:               labID,
		Title:            req.Title,
		Description:      req.Description,
		LabType:          req.LabType,
		EstimatedMinutes: req.EstimatedMinutes,
		OrderIndex:       req.OrderIndex,
		IsPublished:      req.IsPublished,
	}
	if err := h.CatalogUsecase.UpdateLab(c.Request.Context(), &lab); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "lab updated"})
}

func (h *Handler) DeleteLab(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogUsecase.DeleteLab(c.Request.Context(), labID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "lab deleted"})
}

// ========== TASK / QUESTION HANDLERS ==========

func (h *Handler) CreateTask(c *gin.Context) {
	var req struct {
		LabID      uint   `json:"lab_id" binding:"required"`
		Title      string `json:"title" binding:"required"`
		OrderIndex int    `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task := domain.Task{LabID: req.LabID, Title: req.Title, OrderIndex: req.OrderIndex}
	if err := h.CatalogUsecase.CreateTask(c.Request.Context(), &task); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogUsecase.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "task deleted"})
}

func (h *Handler) CreateQuestion(c *gin.Context) {
	var req struct {
		TaskID         uint                `json:"task_id" binding:"required"`
		Title          string              `json:"title" binding:"required"`
		Type           domain.QuestionType `json:"type" binding:"required,oneof=flag text file-upload multiple-choice"`
		ExpectedAnswer string              `json:"expected_answer"`
		Options        string              `json:"options"`
		Hint           string              `json:"hint"`
		AttachmentID   string              `json:"attachment_id"`
		Points         int                 `json:"points"`
		IsRequired     *bool               `json:"is_required"`
		OrderIndex     int                 `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	question := domain.Question{
		TaskID:         req.TaskID,
		Title:          req.Title,
		Type:           req.Type,
		ExpectedAnswer: req.ExpectedAnswer,
		Options:        req.Options,
		Hint:           req.Hint,
		AttachmentID:   req.AttachmentID,
		Points:         req.Points,
		IsRequired:     true,
		OrderIndex:     req.OrderIndex,
	}
	if req.IsRequired != nil {
		question.IsRequired = *req.IsRequired
	}
	if question.Points == 0 {
		question.Points = 10
	}
	if err := h.CatalogUsecase.CreateQuestion(c.Request.Context(), &question); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, question)
}

func (h *Handler) UpdateQuestion(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title          string `json:"title"`
		ExpectedAnswer string `json:"expected_answer"`
		Options        string `json:"options"`
		Hint           string `json:"hint"`
		AttachmentID   string `json:"attachment_id"`
		Points         int    `json:"points"`
		IsRequired     bool   `json:"is_required"`
		OrderIndex     int    `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	question := domain.Question{
		ID:             questionID,
		Title:          req.Title,
		ExpectedAnswer: req.ExpectedAnswer,
		Options:        req.Options,
		Hint:           req.Hint,
		AttachmentID:   req.AttachmentID,
		Points:         req.Points,
		IsRequired:     req.IsRequired,
		OrderIndex:     req.OrderIndex,
	}
	if err := h.CatalogUsecase.UpdateQuestion(c.Request.Context(), &question); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "question updated"})
}

func (h *Handler) DeleteQuestion(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogUsecase.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "question deleted"})
}
