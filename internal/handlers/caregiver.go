package handlers

import (
	"github.com/gin-gonic/gin"

	"medical-history-server/internal/service"
	"medical-history-server/internal/utils"
)

// CaregiverHandler serves the caregiver-facing medical-history routes.
// Caregivers are read-only: they can view histories and files of assigned
// patients but never mutate them.
type CaregiverHandler struct {
	Service *service.HistoryService
}

// NewCaregiverHandler creates a new CaregiverHandler.
func NewCaregiverHandler(svc *service.HistoryService) *CaregiverHandler {
	return &CaregiverHandler{Service: svc}
}

// GetHistory returns an assigned patient's medical history.
func (h *CaregiverHandler) GetHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	response, err := h.Service.GetByPatientID(c.Request.Context(), patientID, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Medical history fetched successfully", response)
}

// GetAssignedPatients lists the patients the caregiver is assigned to.
func (h *CaregiverHandler) GetAssignedPatients(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	patients, err := h.Service.AssignedPatients(c.Request.Context(), principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Assigned patients fetched successfully", patients)
}

// GetFiles lists an assigned patient's files.
func (h *CaregiverHandler) GetFiles(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	files, err := h.Service.ListFiles(c.Request.Context(), patientID, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Files fetched successfully", files)
}
