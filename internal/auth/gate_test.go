package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/models"
)

var testOwnership = Ownership{
	PatientID:    10,
	ProviderIDs:  []int64{20, 21},
	CaregiverIDs: []int64{30},
}

func TestAuthorizeViewRecordAllRolesMemberAndNonMember(t *testing.T) {
	for _, op := range []Operation{OpViewRecord, OpListFiles} {
		cases := []struct {
			name      string
			principal Principal
			allowed   bool
		}{
			{"patient owner", Principal{UserID: 10, Role: models.RolePatient}, true},
			{"patient other", Principal{UserID: 11, Role: models.RolePatient}, false},
			{"provider member", Principal{UserID: 21, Role: models.RoleProvider}, true},
			{"provider non-member", Principal{UserID: 99, Role: models.RoleProvider}, false},
			{"caregiver member", Principal{UserID: 30, Role: models.RoleCaregiver}, true},
			{"caregiver non-member", Principal{UserID: 31, Role: models.RoleCaregiver}, false},
		}
		for _, tc := range cases {
			err := Authorize(op, tc.principal, testOwnership)
			if tc.allowed {
				assert.NoError(t, err, "%s: %s", op, tc.name)
			} else {
				assert.True(t, apperrors.IsAccessDenied(err), "%s: %s", op, tc.name)
			}
		}
	}
}

func TestAuthorizeCreateRecord(t *testing.T) {
	assert.NoError(t, Authorize(OpCreateRecord, Principal{UserID: 99, Role: models.RoleProvider}, Ownership{}))
	assert.True(t, apperrors.IsAccessDenied(Authorize(OpCreateRecord, Principal{UserID: 10, Role: models.RolePatient}, Ownership{})))
	assert.True(t, apperrors.IsAccessDenied(Authorize(OpCreateRecord, Principal{UserID: 30, Role: models.RoleCaregiver}, Ownership{})))
}

func TestAuthorizeUpdateAndDeleteRequireAssignedProvider(t *testing.T) {
	for _, op := range []Operation{OpUpdateRecord, OpDeleteRecord} {
		assert.NoError(t, Authorize(op, Principal{UserID: 20, Role: models.RoleProvider}, testOwnership))
		assert.Error(t, Authorize(op, Principal{UserID: 99, Role: models.RoleProvider}, testOwnership))
		// The record's own patient cannot mutate it.
		assert.Error(t, Authorize(op, Principal{UserID: 10, Role: models.RolePatient}, testOwnership))
		assert.Error(t, Authorize(op, Principal{UserID: 30, Role: models.RoleCaregiver}, testOwnership))
	}
}

func TestAuthorizeFileMutationsExcludeCaregivers(t *testing.T) {
	for _, op := range []Operation{OpUploadFile, OpDeleteFile} {
		assert.NoError(t, Authorize(op, Principal{UserID: 10, Role: models.RolePatient}, testOwnership))
		assert.NoError(t, Authorize(op, Principal{UserID: 20, Role: models.RoleProvider}, testOwnership))
		assert.Error(t, Authorize(op, Principal{UserID: 11, Role: models.RolePatient}, testOwnership))
		assert.Error(t, Authorize(op, Principal{UserID: 99, Role: models.RoleProvider}, testOwnership))
		// Caregivers may view files but never touch them, member or not.
		assert.Error(t, Authorize(op, Principal{UserID: 30, Role: models.RoleCaregiver}, testOwnership))
	}
}

func TestAuthorizeListOperations(t *testing.T) {
	assert.NoError(t, Authorize(OpListAsProvider, Principal{UserID: 1, Role: models.RoleProvider}, Ownership{}))
	assert.Error(t, Authorize(OpListAsProvider, Principal{UserID: 1, Role: models.RoleCaregiver}, Ownership{}))
	assert.NoError(t, Authorize(OpListAsCaregiver, Principal{UserID: 1, Role: models.RoleCaregiver}, Ownership{}))
	assert.Error(t, Authorize(OpListAsCaregiver, Principal{UserID: 1, Role: models.RolePatient}, Ownership{}))
}

func TestAuthorizeFailsClosed(t *testing.T) {
	// Unknown role values never pass any gate.
	weird := Principal{UserID: 10, Role: models.Role("ADMIN")}
	for _, op := range []Operation{OpViewRecord, OpCreateRecord, OpUpdateRecord, OpDeleteRecord,
		OpListAsProvider, OpListAsCaregiver, OpUploadFile, OpListFiles, OpDeleteFile} {
		err := Authorize(op, weird, testOwnership)
		assert.True(t, apperrors.IsAccessDenied(err), "operation %s must deny unknown roles", op)
	}

	// Unknown operations deny too.
	err := Authorize(Operation("Reindex"), Principal{UserID: 20, Role: models.RoleProvider}, testOwnership)
	assert.True(t, apperrors.IsAccessDenied(err))
}
