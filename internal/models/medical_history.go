package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProgressionStage represents the staged progression of the diagnosis
type ProgressionStage string

const (
	StageMild     ProgressionStage = "MILD"
	StageModerate ProgressionStage = "MODERATE"
	StageSevere   ProgressionStage = "SEVERE"
)

// Surgery is owned entirely by its medical history; it has no identity of
// its own and is stored inside the record's JSON column.
type Surgery struct {
	Description string `json:"description"`
	Date        string `json:"date"` // ISO date (YYYY-MM-DD)
}

// MedicalHistory is the single medical-history record a patient has.
// ProviderIDs and CaregiverIDs are insertion-ordered, duplicate-free lists;
// ordering is user-visible in name listings, membership is what matters for
// authorization.
type MedicalHistory struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PatientID int64     `gorm:"uniqueIndex;not null" json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Diagnosis        string           `gorm:"size:500" json:"diagnosis"`
	DiagnosisDate    *time.Time       `gorm:"type:date" json:"diagnosisDate,omitempty"`
	ProgressionStage ProgressionStage `gorm:"size:20" json:"progressionStage,omitempty"`

	GeneticRisk            string `gorm:"size:1000" json:"geneticRisk"`
	FamilyHistory          string `gorm:"size:1000" json:"familyHistory"`
	EnvironmentalFactors   string `gorm:"size:1000" json:"environmentalFactors"`
	Comorbidities          string `gorm:"size:1000" json:"comorbidities"`
	MedicationAllergies    string `gorm:"size:1000" json:"medicationAllergies"`
	EnvironmentalAllergies string `gorm:"size:1000" json:"environmentalAllergies"`
	FoodAllergies          string `gorm:"size:1000" json:"foodAllergies"`

	Surgeries    datatypes.JSONSlice[Surgery] `json:"surgeries"`
	ProviderIDs  datatypes.JSONSlice[int64]   `json:"providerIds"`
	CaregiverIDs datatypes.JSONSlice[int64]   `json:"caregiverIds"`

	Files []MedicalRecordFile `gorm:"foreignKey:MedicalHistoryID" json:"files,omitempty"`
}

// MedicalRecordFile is a file attached to a medical history. Bytes live in
// the file store under FilePath; only metadata is persisted here.
type MedicalRecordFile struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	MedicalHistoryID int64     `gorm:"index;not null" json:"medicalHistoryId"`
	FileName         string    `gorm:"size:255;not null" json:"fileName"`
	FileType         string    `gorm:"size:100" json:"fileType"`
	FilePath         string    `gorm:"size:512;not null" json:"-"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// ContainsID reports set membership over an id list.
func ContainsID(ids []int64, id int64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// MergeIDs appends the ids from extra that are not already present,
// preserving insertion order. Applying the same merge twice yields the same
// list.
func MergeIDs(existing []int64, extra []int64) []int64 {
	merged := make([]int64, 0, len(existing)+len(extra))
	merged = append(merged, existing...)
	for _, id := range extra {
		if !ContainsID(merged, id) {
			merged = append(merged, id)
		}
	}
	return merged
}
