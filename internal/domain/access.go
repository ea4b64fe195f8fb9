package domain

import "strings"

type Role string

const (
	// RoleAdmin may act on and view any owner.
	RoleAdmin Role = "ADMIN"
	// RoleUser is always scoped to its own orders.
	RoleUser Role = "USER"
	// RoleViewer may view every owner's orders but not mutate them.
	RoleViewer Role = "VIEWER"
)

func ParseRole(raw string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleUser, RoleViewer:
		return r, true
	}
	return "", false
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID int64
	Role   Role
}

// Scope is the effective owner restriction for an operation. Unrestricted
// scopes ignore OwnerID.
type Scope struct {
	OwnerID      int64
	Unrestricted bool
}

func OwnerScope(ownerID int64) Scope {
	return Scope{OwnerID: ownerID}
}

func AllOwners() Scope {
	return Scope{Unrestricted: true}
}

// OwnerFilter returns the owner predicate for listing, nil when unrestricted.
func (s Scope) OwnerFilter() *int64 {
	if s.Unrestricted {
		return nil
	}
	id := s.OwnerID
	return &id
}
