package service

import (
	"io"
	"time"

	"medical-history-server/internal/models"
)

// MedicalHistoryRequest is the inbound payload for creating or updating a
// medical history. On update the patientId comes from the URL; CaregiverIDs
// and CaregiverNames are both optional, with explicit ids taking precedence
// over names.
type MedicalHistoryRequest struct {
	PatientID              int64                   `json:"patientId"`
	Diagnosis              string                  `json:"diagnosis"`
	DiagnosisDate          string                  `json:"diagnosisDate"` // ISO date (YYYY-MM-DD)
	ProgressionStage       models.ProgressionStage `json:"progressionStage" binding:"omitempty,oneof=MILD MODERATE SEVERE"`
	GeneticRisk            string                  `json:"geneticRisk"`
	FamilyHistory          string                  `json:"familyHistory"`
	EnvironmentalFactors   string                  `json:"environmentalFactors"`
	Comorbidities          string                  `json:"comorbidities"`
	MedicationAllergies    string                  `json:"medicationAllergies"`
	EnvironmentalAllergies string                  `json:"environmentalAllergies"`
	FoodAllergies          string                  `json:"foodAllergies"`
	Surgeries              []models.Surgery        `json:"surgeries"`
	ProviderIDs            []int64                 `json:"providerIds"`
	CaregiverNames         []string                `json:"caregiverNames"`
	CaregiverIDs           []int64                 `json:"caregiverIds"`
}

// FileResponse is the outward view of an attached file.
type FileResponse struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MedicalHistoryResponse is the enriched view of a medical history. Name
// fields come from the user service; entries that fail to resolve carry the
// "Unknown" placeholder instead of failing the response.
type MedicalHistoryResponse struct {
	ID                     int64                   `json:"id"`
	PatientID              int64                   `json:"patientId"`
	PatientName            string                  `json:"patientName"`
	Diagnosis              string                  `json:"diagnosis"`
	DiagnosisDate          *time.Time              `json:"diagnosisDate,omitempty"`
	ProgressionStage       models.ProgressionStage `json:"progressionStage,omitempty"`
	GeneticRisk            string                  `json:"geneticRisk"`
	FamilyHistory          string                  `json:"familyHistory"`
	EnvironmentalFactors   string                  `json:"environmentalFactors"`
	Comorbidities          string                  `json:"comorbidities"`
	MedicationAllergies    string                  `json:"medicationAllergies"`
	EnvironmentalAllergies string                  `json:"environmentalAllergies"`
	FoodAllergies          string                  `json:"foodAllergies"`
	Surgeries              []models.Surgery        `json:"surgeries"`
	ProviderIDs            []int64                 `json:"providerIds"`
	ProviderNames          []string                `json:"providerNames"`
	CaregiverIDs           []int64                 `json:"caregiverIds"`
	CaregiverNames         []string                `json:"caregiverNames"`
	Files                  []FileResponse          `json:"files"`
	CreatedAt              time.Time               `json:"createdAt"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

// FileUpload carries an inbound file's bytes and metadata.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// FileDownload is a streamed file with the metadata needed for the
// content-disposition header.
type FileDownload struct {
	FileName string
	FileType string
	Data     io.ReadCloser
}
