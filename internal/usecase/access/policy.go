package access

import (
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
)

type Operation string

const (
	OpCreate     Operation = "create"
	OpList       Operation = "list"
	OpOwnerViews Operation = "owner_views"
	OpTransition Operation = "transition"
)

// ResolveScope maps a caller, an optional requested owner and an operation
// to the owner restriction the operation runs under.
func ResolveScope(caller domain.Caller, requestedOwner *int64, op Operation) (domain.Scope, error) {
	switch op {
	case OpCreate:
		switch caller.Role {
		case domain.RoleAdmin:
			if requestedOwner != nil {
				return domain.OwnerScope(*requestedOwner), nil
			}
			return domain.OwnerScope(caller.UserID), nil
		case domain.RoleUser:
			return domain.OwnerScope(caller.UserID), nil
		}

	case OpList:
		switch caller.Role {
		case domain.RoleAdmin:
			if requestedOwner != nil {
				return domain.OwnerScope(*requestedOwner), nil
			}
			return domain.AllOwners(), nil
		case domain.RoleViewer:
			return domain.AllOwners(), nil
		case domain.RoleUser:
			return domain.OwnerScope(caller.UserID), nil
		}

	case OpOwnerViews:
		if requestedOwner == nil {
			return domain.Scope{}, domain.NewValidationError("userId is required")
		}
		switch caller.Role {
		case domain.RoleAdmin, domain.RoleViewer:
			return domain.OwnerScope(*requestedOwner), nil
		case domain.RoleUser:
			if *requestedOwner == caller.UserID {
				return domain.OwnerScope(caller.UserID), nil
			}
		}

	case OpTransition:
		if caller.Role == domain.RoleAdmin {
			return domain.AllOwners(), nil
		}
	}

	return domain.Scope{}, domain.NewAccessDeniedError()
}

// AuthorizeRead checks a loaded order against the caller.
func AuthorizeRead(caller domain.Caller, order *domain.Order) error {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleViewer:
		return nil
	case domain.RoleUser:
		if order.UserID == caller.UserID {
			return nil
		}
	}
	return domain.NewAccessDeniedError()
}
