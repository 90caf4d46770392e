package domain

type Role string

const (
	RoleOwner  Role = "owner"
	RoleViewer Role = "viewer"
)

// Member represents a connection's participation meta for a session room.
// No transport or lifecycle logic here.
type Member struct {
	User UserID
	Role Role
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(user UserID, role Role) *Member {
	return &Member{User: user, Role: role}
}
