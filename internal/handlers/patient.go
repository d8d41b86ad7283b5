package handlers

import (
	"github.com/gin-gonic/gin"

	"medical-history-server/internal/service"
	"medical-history-server/internal/utils"
)

// PatientHandler serves the patient-facing medical-history routes. The
// patient id always comes from the token, never from the URL.
type PatientHandler struct {
	Service *service.HistoryService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(svc *service.HistoryService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

// GetMyHistory returns the caller's own medical history.
func (h *PatientHandler) GetMyHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	response, err := h.Service.GetByPatientID(c.Request.Context(), principal.UserID, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Medical history fetched successfully", response)
}

// UploadMyFile attaches a file to the caller's own medical history.
func (h *PatientHandler) UploadMyFile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	upload, closeFile, ok := bindFileUpload(c)
	if !ok {
		return
	}
	defer closeFile()

	response, err := h.Service.UploadFile(c.Request.Context(), principal.UserID, upload, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Created(c, "File uploaded successfully", response)
}

// GetMyFiles lists the files attached to the caller's medical history.
func (h *PatientHandler) GetMyFiles(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	files, err := h.Service.ListFiles(c.Request.Context(), principal.UserID, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Files fetched successfully", files)
}

// DeleteMyFile removes one of the caller's own files.
func (h *PatientHandler) DeleteMyFile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	if err := h.Service.DeleteFile(c.Request.Context(), principal.UserID, fileID, principal); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.NoContent(c)
}
