package domain

import "strings"

// Role is the tag attached to a state in the [states] section.
type Role string

const (
	RolePlain Role = ""
	RoleStart Role = "S"
	RoleFinal Role = "F"
)

// ParseRole maps a state tag to a Role. Unknown or missing tags are Plain.
func ParseRole(tag string) Role {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "s", "start", "initial":
		return RoleStart
	case "f", "final", "accept", "halt":
		return RoleFinal
	}
	return RolePlain
}

// String returns a readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleFinal:
		return "final"
	}
	return "plain"
}

// State is an opaque identifier plus its role.
type State struct {
	ID   string `json:"id" yaml:"id" cbor:"id"`
	Role Role   `json:"role,omitempty" yaml:"role,omitempty" cbor:"role,omitempty"`
}
