package model

// Role is the closed set of account types carried in tokens and stored on
// user documents.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleVolunteer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
