package http

import (
	"strconv"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	AuthUsecase        domain.AuthUsecase
	UserUsecase        domain.UserUsecase
	CatalogUsecase     domain.CatalogUsecase
	ProgressUsecase    domain.ProgressUsecase
	SubmissionUsecase  domain.SubmissionUsecase
	AchievementUsecase domain.AchievementUsecase
	DashboardUsecase   domain.DashboardUsecase
	Files              repository.AttachmentStore
}

func NewHandler(
	au domain.AuthUsecase,
	uu domain.UserUsecase,
	cu domain.CatalogUsecase,
	pu domain.ProgressUsecase,
	su domain.SubmissionUsecase,
	achu domain.AchievementUsecase,
	du domain.DashboardUsecase,
	files repository.AttachmentStore,
) *Handler {
	return &Handler{
		AuthUsecase:        au,
		UserUsecase:        uu,
		CatalogUsecase:     cu,
		ProgressUsecase:    pu,
		SubmissionUsecase:  su,
		AchievementUsecase: achu,
		DashboardUsecase:   du,
		Files:              files,
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		respondError(c, domain.ErrValidation)
		return 0, false
	}
	return uint(id), true
}

// ========== AUTH HANDLERS ==========

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.AuthUsecase.Register(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.AuthUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	_ = h.AuthUsecase.ForgotPassword(c.Request.Context(), req.Email)
	respondOK(c, gin.H{"message": "If the email exists, a password reset link has been sent."})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.AuthUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"user":        user,
		"permissions": domain.RolePermissions(user.Role),
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Password string `json:"password" binding:"omitempty,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := domain.User{ID: userID, Name: req.Name, Password: req.Password}
	if err := h.AuthUsecase.UpdateProfile(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "profile updated"})
}

// ========== DASHBOARD HANDLERS ==========

func (h *Handler) GetStudentDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := h.DashboardUsecase.GetStudentDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, data)
}

func (h *Handler) GetAdminDashboard(c *gin.Context) {
	data, err := h.DashboardUsecase.GetAdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, data)
}

// ========== USER MANAGEMENT (STAFF/ADMIN) ==========

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	users, total, err := h.UserUsecase.ListUsers(c.Request.Context(), getUserRole(c), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	respondList(c, users, page, perPage, total)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=8"`
		Role     domain.Role `json:"role" binding:"required,oneof=student instructor staff admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.UserUsecase.CreateUser(c.Request.Context(), getUserRole(c), &user); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"omitempty,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := domain.User{ID: userID, Name: req.Name, Email: req.Email, Password: req.Password}
	if err := h.UserUsecase.UpdateUser(c.Request.Context(), getUserRole(c), &user); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "user updated"})
}

func (h *Handler) ApproveUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.UserUsecase.ApproveUser(c.Request.Context(), getUserRole(c), userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "user approved"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.UserUsecase.DeleteUser(c.Request.Context(), getUserRole(c), userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "user deleted"})
}

func (h *Handler) AssignCourse(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		CourseID uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.UserUsecase.AssignCourse(c.Request.Context(), getUserRole(c), userID, req.CourseID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "course assigned"})
}
