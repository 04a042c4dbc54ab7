package http

import (
	"fmt"
	"io"
	"net/http"

	"cyberlab-backend/internal/domain"
	"cyberlab-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ========== FILE HANDLERS ==========

// UploadAttachment stores lab material (pcaps, images, archives) in GridFS.
// Instructor and admin only, enforced by the router.
func (h *Handler) UploadAttachment(c *gin.Context) {
	h.uploadFile(c, repository.FileKindAttachment)
}

// UploadSubmissionFile stores a student's file-upload answer. The returned
// file ID is passed to the submission endpoint as file_id.
func (h *Handler) UploadSubmissionFile(c *gin.Context) {
	h.uploadFile(c, repository.FileKindSubmission)
}

func (h *Handler) uploadFile(c *gin.Context, kind repository.FileKind) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, fmt.Errorf("%w: file is required", domain.ErrValidation))
		return
	}
	defer file.Close()

	fileInfo, err := h.Files.Upload(c.Request.Context(), file, header, kind, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"id":            fileInfo.ID,
		"filename":      fileInfo.Filename,
		"original_name": fileInfo.OriginalName,
		"content_type":  fileInfo.ContentType,
		"size":          fileInfo.Size,
		"kind":          fileInfo.Kind,
	})
}

// StreamFile streams a stored file back to an authenticated user. Submission
// files are only visible to their uploader and to graders.
func (h *Handler) StreamFile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	fileID := c.Param("id")
	if fileID == "" {
		respondError(c, fmt.Errorf("%w: file ID is required", domain.ErrValidation))
		return
	}

	info, err := h.Files.GetFileInfo(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}

	if info.Kind == repository.FileKindSubmission && info.UploadedBy != userID {
		if !domain.RolePermissions(getUserRole(c)).CanGradeUploads {
			respondError(c, fmt.Errorf("submission file: %w", domain.ErrForbidden))
			return
		}
	}

	stream, _, err := h.Files.Download(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	if info.ContentType == "application/pdf" || info.ContentType == "image/png" || info.ContentType == "image/jpeg" {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.OriginalName))
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.OriginalName))
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Headers are already sent, nothing useful to return to the client.
		_ = c.Error(err)
	}
}

func (h *Handler) GetFileInfo(c *gin.Context) {
	fileID := c.Param("id")
	if fileID == "" {
		respondError(c, fmt.Errorf("%w: file ID is required", domain.ErrValidation))
		return
	}

	info, err := h.Files.GetFileInfo(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, info)
}

func (h *Handler) DeleteFile(c *gin.Context) {
	fileID := c.Param("id")
	if fileID == "" {
		respondError(c, fmt.Errorf("%w: file ID is required", domain.ErrValidation))
		return
	}

	if err := h.Files.Delete(c.Request.Context(), fileID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "file deleted"})
}
