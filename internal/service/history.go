package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/auth"
	"medical-history-server/internal/identity"
	"medical-history-server/internal/models"
	"medical-history-server/internal/repository"
	"medical-history-server/internal/storage"
)

// HistoryService orchestrates gate checks, persistence and identity
// enrichment for medical histories and their files.
type HistoryService struct {
	histories   repository.MedicalHistoryRepository
	files       repository.MedicalFileRepository
	users       identity.Lookup
	store       storage.FileStore
	log         *zap.Logger
	uploadDir   string
	lookupLimit int
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(
	histories repository.MedicalHistoryRepository,
	files repository.MedicalFileRepository,
	users identity.Lookup,
	store storage.FileStore,
	logger *zap.Logger,
	uploadDir string,
	lookupLimit int,
) *HistoryService {
	if lookupLimit < 1 {
		lookupLimit = 1
	}
	return &HistoryService{
		histories:   histories,
		files:       files,
		users:       users,
		store:       store,
		log:         logger,
		uploadDir:   strings.TrimRight(uploadDir, "/"),
		lookupLimit: lookupLimit,
	}
}

// Create creates the single medical history a patient may have. The acting
// provider is always a member of the stored ProviderIDs, whether or not the
// request listed them.
func (s *HistoryService) Create(ctx context.Context, req *MedicalHistoryRequest, providerID int64) (*MedicalHistoryResponse, error) {
	if req.PatientID == 0 {
		return nil, fmt.Errorf("patientId is required")
	}

	exists, err := s.histories.ExistsByPatientID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflictf("medical history already exists for patient %d", req.PatientID)
	}

	history := &models.MedicalHistory{PatientID: req.PatientID}
	if err := s.applyRequest(history, req); err != nil {
		return nil, err
	}
	history.ProviderIDs = models.MergeIDs(models.MergeIDs(nil, req.ProviderIDs), []int64{providerID})

	caregiverIDs, supplied := s.caregiversFromRequest(ctx, req)
	if supplied {
		history.CaregiverIDs = caregiverIDs
	} else {
		history.CaregiverIDs = []int64{}
	}

	if err := s.histories.Create(ctx, history); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, history), nil
}

// Update mutates an existing history. Request ProviderIDs are merged, never
// replaced, and the acting provider is re-added even when the request omits
// them; the merge is idempotent. Caregivers follow a three-way branch:
// explicit ids replace, else names re-resolve, else prior state is kept.
func (s *HistoryService) Update(ctx context.Context, patientID int64, req *MedicalHistoryRequest, providerID int64) (*MedicalHistoryResponse, error) {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	principal := auth.Principal{UserID: providerID, Role: models.RoleProvider}
	if err := auth.Authorize(auth.OpUpdateRecord, principal, ownershipOf(history)); err != nil {
		return nil, err
	}

	if err := s.applyRequest(history, req); err != nil {
		return nil, err
	}
	history.ProviderIDs = models.MergeIDs(models.MergeIDs(history.ProviderIDs, req.ProviderIDs), []int64{providerID})

	if caregiverIDs, supplied := s.caregiversFromRequest(ctx, req); supplied {
		history.CaregiverIDs = caregiverIDs
	}

	if err := s.histories.Save(ctx, history); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, history), nil
}

// Delete removes a history and its files. File bytes are released first,
// best-effort; a storage delete failure is logged and never blocks the
// record deletion. Rows go last so a crash leaves rows pointing at possibly
// deleted bytes rather than orphaned bytes with no rows.
func (s *HistoryService) Delete(ctx context.Context, patientID int64, providerID int64) error {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return err
	}

	principal := auth.Principal{UserID: providerID, Role: models.RoleProvider}
	if err := auth.Authorize(auth.OpDeleteRecord, principal, ownershipOf(history)); err != nil {
		return err
	}

	for _, file := range history.Files {
		if err := s.store.Delete(ctx, file.FilePath); err != nil {
			s.log.Error("failed to delete file bytes during record deletion",
				zap.Int64("fileId", file.ID),
				zap.String("path", file.FilePath),
				zap.Error(err),
			)
		}
	}

	return s.histories.DeleteWithFiles(ctx, history)
}

// GetByPatientID returns the enriched history the principal is allowed to
// view.
func (s *HistoryService) GetByPatientID(ctx context.Context, patientID int64, principal auth.Principal) (*MedicalHistoryResponse, error) {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.OpViewRecord, principal, ownershipOf(history)); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, history), nil
}

// ListForProvider returns every history the provider is a member of.
func (s *HistoryService) ListForProvider(ctx context.Context, principal auth.Principal) ([]*MedicalHistoryResponse, error) {
	if err := auth.Authorize(auth.OpListAsProvider, principal, auth.Ownership{}); err != nil {
		return nil, err
	}
	histories, err := s.histories.FindByProviderID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, histories), nil
}

// ListForCaregiver returns every history the caregiver is a member of.
func (s *HistoryService) ListForCaregiver(ctx context.Context, principal auth.Principal) ([]*MedicalHistoryResponse, error) {
	if err := auth.Authorize(auth.OpListAsCaregiver, principal, auth.Ownership{}); err != nil {
		return nil, err
	}
	histories, err := s.histories.FindByCaregiverID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, histories), nil
}

// AssignedPatients lists the patients a caregiver is assigned to. A failed
// identity lookup yields a synthetic partial identity built from what the
// record already knows, never a failed response.
func (s *HistoryService) AssignedPatients(ctx context.Context, principal auth.Principal) ([]identity.Identity, error) {
	if err := auth.Authorize(auth.OpListAsCaregiver, principal, auth.Ownership{}); err != nil {
		return nil, err
	}
	histories, err := s.histories.FindByCaregiverID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	patients := make([]identity.Identity, 0, len(histories))
	for _, history := range histories {
		user, err := s.users.GetByID(ctx, history.PatientID)
		if err != nil {
			s.log.Warn("failed to fetch patient data, using fallback",
				zap.Int64("patientId", history.PatientID),
				zap.Error(err),
			)
			patients = append(patients, identity.Identity{
				ID:        history.PatientID,
				Username:  "N/A",
				FirstName: UnknownName,
				Email:     "N/A",
				Role:      string(models.RolePatient),
			})
			continue
		}
		patients = append(patients, *user)
	}
	return patients, nil
}

// UploadFile stores an attachment for the patient's history. The byte write
// happens strictly before the metadata row; a storage failure aborts the
// upload with no row created.
func (s *HistoryService) UploadFile(ctx context.Context, patientID int64, upload *FileUpload, principal auth.Principal) (*FileResponse, error) {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.OpUploadFile, principal, ownershipOf(history)); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/%s_%s", s.uploadDir, patientID, uuid.New().String(), upload.FileName)
	if err := s.store.Write(ctx, path, upload.Data, upload.Size, upload.ContentType); err != nil {
		return nil, err
	}

	file := &models.MedicalRecordFile{
		MedicalHistoryID: history.ID,
		FileName:         upload.FileName,
		FileType:         upload.ContentType,
		FilePath:         path,
		UploadedAt:       time.Now(),
	}
	if err := s.files.Create(ctx, file); err != nil {
		// Don't leave orphaned bytes behind the failed row.
		if cleanupErr := s.store.Delete(ctx, path); cleanupErr != nil {
			s.log.Error("failed to clean up bytes after metadata insert failure",
				zap.String("path", path),
				zap.Error(cleanupErr),
			)
		}
		return nil, err
	}

	resp := toFileResponse(*file)
	return &resp, nil
}

// ListFiles returns the file metadata of the patient's history.
func (s *HistoryService) ListFiles(ctx context.Context, patientID int64, principal auth.Principal) ([]FileResponse, error) {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.OpListFiles, principal, ownershipOf(history)); err != nil {
		return nil, err
	}

	responses := make([]FileResponse, 0, len(history.Files))
	for _, file := range history.Files {
		responses = append(responses, toFileResponse(file))
	}
	return responses, nil
}

// DeleteFile removes one attachment. A fileId belonging to a different
// patient's history is treated as not found even though the row exists;
// guessing foreign file ids must not reveal anything.
func (s *HistoryService) DeleteFile(ctx context.Context, patientID int64, fileID int64, principal auth.Principal) error {
	history, err := s.histories.FindByPatientID(ctx, patientID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(auth.OpDeleteFile, principal, ownershipOf(history)); err != nil {
		return err
	}

	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.MedicalHistoryID != history.ID {
		return apperrors.NotFoundf("file %d not found", fileID)
	}

	if err := s.store.Delete(ctx, file.FilePath); err != nil {
		s.log.Error("failed to delete file bytes",
			zap.Int64("fileId", file.ID),
			zap.String("path", file.FilePath),
			zap.Error(err),
		)
	}
	return s.files.Delete(ctx, fileID)
}

// DownloadFile streams an attachment after gating on the parent record.
func (s *HistoryService) DownloadFile(ctx context.Context, fileID int64, principal auth.Principal) (*FileDownload, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	history, err := s.histories.FindByID(ctx, file.MedicalHistoryID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.OpViewRecord, principal, ownershipOf(history)); err != nil {
		return nil, err
	}

	data, err := s.store.Read(ctx, file.FilePath)
	if err != nil {
		return nil, err
	}
	return &FileDownload{
		FileName: file.FileName,
		FileType: file.FileType,
		Data:     data,
	}, nil
}

// ------------------- helpers -------------------

// caregiversFromRequest resolves the caregivers a request assigns. Explicit
// ids take precedence over names; the second return value reports whether
// the request assigned caregivers at all.
func (s *HistoryService) caregiversFromRequest(ctx context.Context, req *MedicalHistoryRequest) ([]int64, bool) {
	if req.CaregiverIDs != nil {
		return models.MergeIDs(nil, req.CaregiverIDs), true
	}
	if req.CaregiverNames != nil {
		return s.resolveCaregiverNames(ctx, req.CaregiverNames), true
	}
	return nil, false
}

// resolveCaregiverNames maps usernames to ids, best-effort. Names that are
// empty, unresolvable or belong to a non-caregiver are skipped without
// failing the operation.
func (s *HistoryService) resolveCaregiverNames(ctx context.Context, names []string) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		user, err := s.users.GetByUsername(ctx, name)
		if err != nil {
			s.log.Warn("could not resolve caregiver name",
				zap.String("username", name),
				zap.Error(err),
			)
			continue
		}
		if user.Role != string(models.RoleCaregiver) {
			s.log.Warn("user exists but is not a caregiver",
				zap.String("username", name),
				zap.String("role", user.Role),
			)
			continue
		}
		ids = models.MergeIDs(ids, []int64{user.ID})
	}
	return ids
}

// applyRequest copies the medical fields of the request into the record.
// ProviderIDs and CaregiverIDs are managed by the callers' merge policies,
// never here.
func (s *HistoryService) applyRequest(history *models.MedicalHistory, req *MedicalHistoryRequest) error {
	history.Diagnosis = req.Diagnosis
	if req.DiagnosisDate != "" {
		parsed, err := parseDate(req.DiagnosisDate)
		if err != nil {
			return fmt.Errorf("invalid diagnosisDate: %w", err)
		}
		history.DiagnosisDate = &parsed
	} else {
		history.DiagnosisDate = nil
	}
	history.ProgressionStage = req.ProgressionStage
	history.GeneticRisk = req.GeneticRisk
	history.FamilyHistory = req.FamilyHistory
	history.EnvironmentalFactors = req.EnvironmentalFactors
	history.Comorbidities = req.Comorbidities
	history.MedicationAllergies = req.MedicationAllergies
	history.EnvironmentalAllergies = req.EnvironmentalAllergies
	history.FoodAllergies = req.FoodAllergies
	if req.Surgeries != nil {
		history.Surgeries = req.Surgeries
	} else {
		history.Surgeries = []models.Surgery{}
	}
	return nil
}

// toResponse builds the enriched view of a history. All referenced
// identities resolve through one bounded fan-out; any single failure
// degrades that entry to UnknownName.
func (s *HistoryService) toResponse(ctx context.Context, history *models.MedicalHistory) *MedicalHistoryResponse {
	ids := make([]int64, 0, 1+len(history.ProviderIDs)+len(history.CaregiverIDs))
	ids = append(ids, history.PatientID)
	ids = append(ids, history.ProviderIDs...)
	ids = append(ids, history.CaregiverIDs...)
	names := s.resolveNames(ctx, ids)

	providerNames := names[1 : 1+len(history.ProviderIDs)]
	caregiverNames := names[1+len(history.ProviderIDs):]

	files := make([]FileResponse, 0, len(history.Files))
	for _, file := range history.Files {
		files = append(files, toFileResponse(file))
	}

	return &MedicalHistoryResponse{
		ID:                     history.ID,
		PatientID:              history.PatientID,
		PatientName:            names[0],
		Diagnosis:              history.Diagnosis,
		DiagnosisDate:          history.DiagnosisDate,
		ProgressionStage:       history.ProgressionStage,
		GeneticRisk:            history.GeneticRisk,
		FamilyHistory:          history.FamilyHistory,
		EnvironmentalFactors:   history.EnvironmentalFactors,
		Comorbidities:          history.Comorbidities,
		MedicationAllergies:    history.MedicationAllergies,
		EnvironmentalAllergies: history.EnvironmentalAllergies,
		FoodAllergies:          history.FoodAllergies,
		Surgeries:              history.Surgeries,
		ProviderIDs:            history.ProviderIDs,
		ProviderNames:          providerNames,
		CaregiverIDs:           history.CaregiverIDs,
		CaregiverNames:         caregiverNames,
		Files:                  files,
		CreatedAt:              history.CreatedAt,
		UpdatedAt:              history.UpdatedAt,
	}
}

func (s *HistoryService) toResponses(ctx context.Context, histories []models.MedicalHistory) []*MedicalHistoryResponse {
	responses := make([]*MedicalHistoryResponse, 0, len(histories))
	for i := range histories {
		responses = append(responses, s.toResponse(ctx, &histories[i]))
	}
	return responses
}

func ownershipOf(history *models.MedicalHistory) auth.Ownership {
	return auth.Ownership{
		PatientID:    history.PatientID,
		ProviderIDs:  history.ProviderIDs,
		CaregiverIDs: history.CaregiverIDs,
	}
}

func toFileResponse(file models.MedicalRecordFile) FileResponse {
	return FileResponse{
		ID:         file.ID,
		FileName:   file.FileName,
		FileType:   file.FileType,
		FileURL:    fmt.Sprintf("/files/%d", file.ID),
		UploadedAt: file.UploadedAt,
	}
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
