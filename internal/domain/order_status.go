package domain

import (
	"strings"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusFailed     OrderStatus = "FAILED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in declaration order.
var OrderStatuses = []OrderStatus{StatusNew, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled}

// transitions is the order state machine. Terminal states map to an empty set.
var transitions = map[OrderStatus][]OrderStatus{
	StatusNew:        {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusCancelled:  {},
}

// ParseOrderStatus accepts a status name in any case, surrounding spaces ignored.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := transitions[candidate]; ok {
		return candidate, nil
	}
	return "", NewValidationError("Invalid status. Accepted values: %s", joinStatuses(OrderStatuses))
}

// AllowedTransitions returns the successors of from. Unknown states have none.
func AllowedTransitions(from OrderStatus) []OrderStatus {
	next := transitions[from]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CheckTransition returns a validation error describing the illegal pair
// and the legal alternatives when from -> to is not an edge of the machine.
func CheckTransition(from, to OrderStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	allowed := joinStatuses(transitions[from])
	if allowed == "" {
		allowed = "none (terminal state)"
	}
	return NewValidationError("Invalid status transition: %s → %s. Allowed transitions from %s: %s", from, to, from, allowed)
}

func joinStatuses(statuses []OrderStatus) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
