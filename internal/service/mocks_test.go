package service

import (
	"context"
	"errors"
	"io"

	"medical-history-server/internal/identity"
	"medical-history-server/internal/models"
	"medical-history-server/internal/repository"
	"medical-history-server/internal/storage"
)

// Compile-time checks that the mocks satisfy their contracts.
var (
	_ repository.MedicalHistoryRepository = (*MockHistoryRepository)(nil)
	_ repository.MedicalFileRepository    = (*MockFileRepository)(nil)
	_ identity.Lookup                     = (*MockLookup)(nil)
	_ storage.FileStore                   = (*MockFileStore)(nil)
)

// MockHistoryRepository is a function-field mock of the history repository.
type MockHistoryRepository struct {
	CreateFunc            func(ctx context.Context, history *models.MedicalHistory) error
	SaveFunc              func(ctx context.Context, history *models.MedicalHistory) error
	FindByIDFunc          func(ctx context.Context, id int64) (*models.MedicalHistory, error)
	FindByPatientIDFunc   func(ctx context.Context, patientID int64) (*models.MedicalHistory, error)
	FindByProviderIDFunc  func(ctx context.Context, providerID int64) ([]models.MedicalHistory, error)
	FindByCaregiverIDFunc func(ctx context.Context, caregiverID int64) ([]models.MedicalHistory, error)
	ExistsByPatientIDFunc func(ctx context.Context, patientID int64) (bool, error)
	DeleteWithFilesFunc   func(ctx context.Context, history *models.MedicalHistory) error
}

func (m *MockHistoryRepository) Create(ctx context.Context, history *models.MedicalHistory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, history)
	}
	return nil
}

func (m *MockHistoryRepository) Save(ctx context.Context, history *models.MedicalHistory) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, history)
	}
	return nil
}

func (m *MockHistoryRepository) FindByID(ctx context.Context, id int64) (*models.MedicalHistory, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockHistoryRepository) FindByPatientID(ctx context.Context, patientID int64) (*models.MedicalHistory, error) {
	if m.FindByPatientIDFunc != nil {
		return m.FindByPatientIDFunc(ctx, patientID)
	}
	return nil, errors.New("FindByPatientIDFunc not implemented in mock")
}

func (m *MockHistoryRepository) FindByProviderID(ctx context.Context, providerID int64) ([]models.MedicalHistory, error) {
	if m.FindByProviderIDFunc != nil {
		return m.FindByProviderIDFunc(ctx, providerID)
	}
	return nil, nil
}

func (m *MockHistoryRepository) FindByCaregiverID(ctx context.Context, caregiverID int64) ([]models.MedicalHistory, error) {
	if m.FindByCaregiverIDFunc != nil {
		return m.FindByCaregiverIDFunc(ctx, caregiverID)
	}
	return nil, nil
}

func (m *MockHistoryRepository) ExistsByPatientID(ctx context.Context, patientID int64) (bool, error) {
	if m.ExistsByPatientIDFunc != nil {
		return m.ExistsByPatientIDFunc(ctx, patientID)
	}
	return false, nil
}

func (m *MockHistoryRepository) DeleteWithFiles(ctx context.Context, history *models.MedicalHistory) error {
	if m.DeleteWithFilesFunc != nil {
		return m.DeleteWithFilesFunc(ctx, history)
	}
	return nil
}

// MockFileRepository is a function-field mock of the file repository.
type MockFileRepository struct {
	CreateFunc          func(ctx context.Context, file *models.MedicalRecordFile) error
	FindByIDFunc        func(ctx context.Context, id int64) (*models.MedicalRecordFile, error)
	FindByHistoryIDFunc func(ctx context.Context, historyID int64) ([]models.MedicalRecordFile, error)
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (m *MockFileRepository) Create(ctx context.Context, file *models.MedicalRecordFile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, file)
	}
	return nil
}

func (m *MockFileRepository) FindByID(ctx context.Context, id int64) (*models.MedicalRecordFile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockFileRepository) FindByHistoryID(ctx context.Context, historyID int64) ([]models.MedicalRecordFile, error) {
	if m.FindByHistoryIDFunc != nil {
		return m.FindByHistoryIDFunc(ctx, historyID)
	}
	return nil, nil
}

func (m *MockFileRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockLookup is a function-field mock of the identity lookup.
type MockLookup struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*identity.Identity, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*identity.Identity, error)
	GetByRoleFunc     func(ctx context.Context, role models.Role) ([]identity.Identity, error)
}

func (m *MockLookup) GetByID(ctx context.Context, id int64) (*identity.Identity, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockLookup) GetByUsername(ctx context.Context, username string) (*identity.Identity, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, errors.New("GetByUsernameFunc not implemented in mock")
}

func (m *MockLookup) GetByRole(ctx context.Context, role models.Role) ([]identity.Identity, error) {
	if m.GetByRoleFunc != nil {
		return m.GetByRoleFunc(ctx, role)
	}
	return nil, nil
}

// MockFileStore is a function-field mock of the byte store. It records the
// order of writes and deletes for assertions.
type MockFileStore struct {
	WriteFunc  func(ctx context.Context, path string, data io.Reader, size int64, contentType string) error
	ReadFunc   func(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFunc func(ctx context.Context, path string) error

	Writes  []string
	Deletes []string
}

func (m *MockFileStore) Write(ctx context.Context, path string, data io.Reader, size int64, contentType string) error {
	m.Writes = append(m.Writes, path)
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, path, data, size, contentType)
	}
	return nil
}

func (m *MockFileStore) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, path)
	}
	return nil, errors.New("ReadFunc not implemented in mock")
}

func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	m.Deletes = append(m.Deletes, path)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path)
	}
	return nil
}
