package access

import "strings"

// Role is the capability tier assigned to an identity.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// ParseRole normalizes a raw role value. Unknown or empty values fall back
// to Viewer, the least-privileged tier.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleViewer
	}
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Identity is the minimal principal the policy engine decides over.
type Identity struct {
	ID   string
	Role Role
}

// CanAccess decides whether the identity may act on a resource owned by
// ownerID. Admins may act on anything; everyone else only on what they own.
// Editor and Viewer carry identical resource rights here.
func CanAccess(id Identity, ownerID string) bool {
	if id.Role == RoleAdmin {
		return true
	}
	return id.ID != "" && id.ID == ownerID
}
