package http

import (
	"github.com/gin-gonic/gin"
)

// ========== SUBMISSION HANDLERS ==========

func (h *Handler) SubmitAnswer(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		TaskID     uint   `json:"task_id" binding:"required"`
		QuestionID uint   `json:"question_id" binding:"required"`
		Answer     string `json:"answer"`
		FileID     string `json:"file_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.SubmissionUsecase.SubmitAnswer(c.Request.Context(), userID, labID, req.TaskID, req.QuestionID, req.Answer, req.FileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) GetLabSubmissions(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	submissions, err := h.SubmissionUsecase.GetLabSubmissions(c.Request.Context(), userID, labID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"submissions": submissions, "count": len(submissions)})
}

func (h *Handler) GetLabProgress(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	progress, err := h.ProgressUsecase.GetLabProgress(c.Request.Context(), userID, labID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, progress)
}

// ========== GRADING HANDLERS ==========

func (h *Handler) GetPendingUploads(c *gin.Context) {
	labID, ok := paramID(c, "id")
	if !ok {
		return
	}
	submissions, err := h.SubmissionUsecase.GetPendingUploads(c.Request.Context(), labID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"submissions": submissions, "count": len(submissions)})
}

func (h *Handler) GradeUpload(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Correct  *bool  `json:"correct" binding:"required"`
		Points   int    `json:"points"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.SubmissionUsecase.GradeUpload(c.Request.Context(), getUserRole(c), submissionID, *req.Correct, req.Points, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "submission graded"})
}
