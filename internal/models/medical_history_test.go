package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsID(t *testing.T) {
	assert.True(t, ContainsID([]int64{7, 9}, 9))
	assert.False(t, ContainsID([]int64{7, 9}, 10))
	assert.False(t, ContainsID(nil, 7))
}

func TestMergeIDs(t *testing.T) {
	assert.Equal(t, []int64{7, 9}, MergeIDs([]int64{7}, []int64{9}))
	assert.Equal(t, []int64{7, 9}, MergeIDs([]int64{7, 9}, []int64{7}))
	assert.Equal(t, []int64{7}, MergeIDs(nil, []int64{7, 7}))
	assert.Equal(t, []int64{}, MergeIDs(nil, nil))

	// Idempotent: merging the same extras again changes nothing.
	merged := MergeIDs([]int64{7}, []int64{9, 10})
	assert.Equal(t, merged, MergeIDs(merged, []int64{9, 10}))
}

func TestParseRole(t *testing.T) {
	for value, want := range map[string]Role{
		"PATIENT":   RolePatient,
		"PROVIDER":  RoleProvider,
		"CAREGIVER": RoleCaregiver,
	} {
		role, err := ParseRole(value)
		assert.NoError(t, err)
		assert.Equal(t, want, role)
	}

	for _, value := range []string{"", "ADMIN", "patient", "Provider"} {
		_, err := ParseRole(value)
		assert.Error(t, err, "value %q", value)
	}
}
