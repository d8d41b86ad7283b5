package handlers

import (
	"github.com/gin-gonic/gin"

	"medical-history-server/internal/identity"
	"medical-history-server/internal/models"
	"medical-history-server/internal/service"
	"medical-history-server/internal/utils"
)

// ProviderHandler serves the provider-facing medical-history routes.
type ProviderHandler struct {
	Service *service.HistoryService
	Users   identity.Lookup
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(svc *service.HistoryService, users identity.Lookup) *ProviderHandler {
	return &ProviderHandler{Service: svc, Users: users}
}

// CreateHistory creates the medical history for a patient.
func (h *ProviderHandler) CreateHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req service.MedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.PatientID == 0 {
		utils.BadRequest(c, "patientId is required")
		return
	}

	response, err := h.Service.Create(c.Request.Context(), &req, principal.UserID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Created(c, "Medical history created successfully", response)
}

// UpdateHistory updates a patient's medical history.
func (h *ProviderHandler) UpdateHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	var req service.MedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	response, err := h.Service.Update(c.Request.Context(), patientID, &req, principal.UserID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Medical history updated successfully", response)
}

// GetAllHistories lists every history the provider is assigned to.
func (h *ProviderHandler) GetAllHistories(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	responses, err := h.Service.ListForProvider(c.Request.Context(), principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Medical histories fetched successfully", responses)
}

// GetHistory returns one patient's history if the provider is assigned.
func (h *ProviderHandler) GetHistory(c *gin.Context) {
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

// DeleteHistory deletes a patient's history including its files.
func (h *ProviderHandler) DeleteHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), patientID, principal.UserID); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.NoContent(c)
}

// GetPatients lists all patients known to the user service.
func (h *ProviderHandler) GetPatients(c *gin.Context) {
	patients, err := h.Users.GetByRole(c.Request.Context(), models.RolePatient)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetCaregivers lists all caregivers known to the user service.
func (h *ProviderHandler) GetCaregivers(c *gin.Context) {
	caregivers, err := h.Users.GetByRole(c.Request.Context(), models.RoleCaregiver)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Caregivers fetched successfully", caregivers)
}

// UploadFileForPatient attaches a file to an assigned patient's history.
func (h *ProviderHandler) UploadFileForPatient(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	upload, closeFile, ok := bindFileUpload(c)
	if !ok {
		return
	}
	defer closeFile()

	response, err := h.Service.UploadFile(c.Request.Context(), patientID, upload, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Created(c, "File uploaded successfully", response)
}

// GetFilesForPatient lists an assigned patient's files.
func (h *ProviderHandler) GetFilesForPatient(c *gin.Context) {
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

// DeleteFileForPatient removes a file from an assigned patient's history.
func (h *ProviderHandler) DeleteFileForPatient(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	if err := h.Service.DeleteFile(c.Request.Context(), patientID, fileID, principal); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.NoContent(c)
}
