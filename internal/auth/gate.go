package auth

import (
	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/models"
)

// Operation enumerates the actions the gate can decide on.
type Operation string

const (
	OpViewRecord      Operation = "ViewRecord"
	OpCreateRecord    Operation = "CreateRecord"
	OpUpdateRecord    Operation = "UpdateRecord"
	OpDeleteRecord    Operation = "DeleteRecord"
	OpListAsProvider  Operation = "ListAsProvider"
	OpListAsCaregiver Operation = "ListAsCaregiver"
	OpUploadFile      Operation = "UploadFile"
	OpListFiles       Operation = "ListFiles"
	OpDeleteFile      Operation = "DeleteFile"
)

// Ownership carries the principals bound to a medical history. Zero value
// is fine for operations that target no existing record (create, list).
type Ownership struct {
	PatientID    int64
	ProviderIDs  []int64
	CaregiverIDs []int64
}

// Authorize decides whether the principal may perform op on the record with
// the given ownership. Pure function, no I/O. Any unmatched role or failed
// condition denies; an unknown role or operation denies with a generic
// reason rather than ever failing open.
func Authorize(op Operation, p Principal, own Ownership) error {
	switch op {
	case OpViewRecord, OpListFiles:
		switch p.Role {
		case models.RolePatient:
			if p.UserID == own.PatientID {
				return nil
			}
			return apperrors.AccessDenied("you can only view your own medical history")
		case models.RoleProvider:
			if models.ContainsID(own.ProviderIDs, p.UserID) {
				return nil
			}
			return apperrors.AccessDenied("provider not assigned to this patient")
		case models.RoleCaregiver:
			if models.ContainsID(own.CaregiverIDs, p.UserID) {
				return nil
			}
			return apperrors.AccessDenied("caregiver not assigned to this patient")
		}

	case OpCreateRecord:
		if p.Role == models.RoleProvider {
			return nil
		}
		return apperrors.AccessDenied("only providers can create medical histories")

	case OpUpdateRecord, OpDeleteRecord:
		if p.Role == models.RoleProvider && models.ContainsID(own.ProviderIDs, p.UserID) {
			return nil
		}
		return apperrors.AccessDenied("provider not assigned to this patient")

	case OpUploadFile, OpDeleteFile:
		switch p.Role {
		case models.RolePatient:
			if p.UserID == own.PatientID {
				return nil
			}
			return apperrors.AccessDenied("you can only manage files of your own medical history")
		case models.RoleProvider:
			if models.ContainsID(own.ProviderIDs, p.UserID) {
				return nil
			}
			return apperrors.AccessDenied("provider not assigned to this patient")
		}
		return apperrors.AccessDenied("only patients and providers can manage files")

	case OpListAsProvider:
		if p.Role == models.RoleProvider {
			return nil
		}
		return apperrors.AccessDenied("provider role required")

	case OpListAsCaregiver:
		if p.Role == models.RoleCaregiver {
			return nil
		}
		return apperrors.AccessDenied("caregiver role required")
	}

	return apperrors.AccessDenied("access denied")
}
