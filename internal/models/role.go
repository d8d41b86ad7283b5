package models

import "fmt"

// Role enum. Decoded once at the token-verification boundary; anything
// outside the three known values is a decode failure, never a fourth role.
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleProvider  Role = "PROVIDER"
	RoleCaregiver Role = "CAREGIVER"
)

// ParseRole converts a raw role claim into a Role. Unknown values fail
// closed.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RolePatient, RoleProvider, RoleCaregiver:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}
