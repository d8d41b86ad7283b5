package repository

import (
	"context"

	"medical-history-server/internal/models"
)

// MedicalHistoryRepository is the persistence contract for medical
// histories. FindByPatientID returns apperrors.ErrNotFound when no record
// exists; Create returns apperrors.ErrConflict when the patient already has
// one.
type MedicalHistoryRepository interface {
	Create(ctx context.Context, history *models.MedicalHistory) error
	Save(ctx context.Context, history *models.MedicalHistory) error
	FindByID(ctx context.Context, id int64) (*models.MedicalHistory, error)
	FindByPatientID(ctx context.Context, patientID int64) (*models.MedicalHistory, error)
	FindByProviderID(ctx context.Context, providerID int64) ([]models.MedicalHistory, error)
	FindByCaregiverID(ctx context.Context, caregiverID int64) ([]models.MedicalHistory, error)
	ExistsByPatientID(ctx context.Context, patientID int64) (bool, error)
	DeleteWithFiles(ctx context.Context, history *models.MedicalHistory) error
}

// MedicalFileRepository is the persistence contract for file metadata rows.
type MedicalFileRepository interface {
	Create(ctx context.Context, file *models.MedicalRecordFile) error
	FindByID(ctx context.Context, id int64) (*models.MedicalRecordFile, error)
	FindByHistoryID(ctx context.Context, historyID int64) ([]models.MedicalRecordFile, error)
	Delete(ctx context.Context, id int64) error
}
