package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/models"
)

// GormHistoryRepository persists medical histories with GORM.
type GormHistoryRepository struct {
	DB *gorm.DB
}

// NewGormHistoryRepository creates a GormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{DB: db}
}

// Create inserts a new medical history. The unique index on patient_id makes
// a concurrent duplicate create collapse to a single winner; the loser gets
// a Conflict.
func (r *GormHistoryRepository) Create(ctx context.Context, history *models.MedicalHistory) error {
	if err := r.DB.WithContext(ctx).Create(history).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("medical history already exists for patient %d", history.PatientID)
		}
		return err
	}
	return nil
}

// Save writes back a mutated medical history.
func (r *GormHistoryRepository) Save(ctx context.Context, history *models.MedicalHistory) error {
	return r.DB.WithContext(ctx).Save(history).Error
}

// FindByID loads a history with its files by surrogate id.
func (r *GormHistoryRepository) FindByID(ctx context.Context, id int64) (*models.MedicalHistory, error) {
	var history models.MedicalHistory
	err := r.DB.WithContext(ctx).Preload("Files").First(&history, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("medical history %d not found", id)
		}
		return nil, err
	}
	return &history, nil
}

// FindByPatientID loads a history with its files by the unique patient id.
func (r *GormHistoryRepository) FindByPatientID(ctx context.Context, patientID int64) (*models.MedicalHistory, error) {
	var history models.MedicalHistory
	err := r.DB.WithContext(ctx).Preload("Files").Where("patient_id = ?", patientID).First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("medical history not found for patient %d", patientID)
		}
		return nil, err
	}
	return &history, nil
}

// FindByProviderID returns every history the provider is a member of.
func (r *GormHistoryRepository) FindByProviderID(ctx context.Context, providerID int64) ([]models.MedicalHistory, error) {
	var histories []models.MedicalHistory
	err := r.DB.WithContext(ctx).Preload("Files").
		Where(datatypes.JSONArrayQuery("provider_ids").Contains(providerID)).
		Order("created_at desc").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// FindByCaregiverID returns every history the caregiver is a member of.
func (r *GormHistoryRepository) FindByCaregiverID(ctx context.Context, caregiverID int64) ([]models.MedicalHistory, error) {
	var histories []models.MedicalHistory
	err := r.DB.WithContext(ctx).Preload("Files").
		Where(datatypes.JSONArrayQuery("caregiver_ids").Contains(caregiverID)).
		Order("created_at desc").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// ExistsByPatientID reports whether a history exists for the patient.
func (r *GormHistoryRepository) ExistsByPatientID(ctx context.Context, patientID int64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.MedicalHistory{}).
		Where("patient_id = ?", patientID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteWithFiles removes the file rows and then the record row in one
// transaction. Byte storage cleanup happens before this is called.
func (r *GormHistoryRepository) DeleteWithFiles(ctx context.Context, history *models.MedicalHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medical_history_id = ?", history.ID).Delete(&models.MedicalRecordFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(history).Error
	})
}

// GormFileRepository persists file metadata rows with GORM.
type GormFileRepository struct {
	DB *gorm.DB
}

// NewGormFileRepository creates a GormFileRepository.
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{DB: db}
}

// Create inserts a file metadata row.
func (r *GormFileRepository) Create(ctx context.Context, file *models.MedicalRecordFile) error {
	return r.DB.WithContext(ctx).Create(file).Error
}

// FindByID loads a file row by its surrogate id.
func (r *GormFileRepository) FindByID(ctx context.Context, id int64) (*models.MedicalRecordFile, error) {
	var file models.MedicalRecordFile
	err := r.DB.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("file %d not found", id)
		}
		return nil, err
	}
	return &file, nil
}

// FindByHistoryID lists the files owned by a medical history.
func (r *GormFileRepository) FindByHistoryID(ctx context.Context, historyID int64) ([]models.MedicalRecordFile, error) {
	var files []models.MedicalRecordFile
	err := r.DB.WithContext(ctx).
		Where("medical_history_id = ?", historyID).
		Order("uploaded_at asc").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes a file metadata row.
func (r *GormFileRepository) Delete(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).Delete(&models.MedicalRecordFile{}, "id = ?", id).Error
}
