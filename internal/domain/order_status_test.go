package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestTransitions(t *testing.T) {
	allowed := map[OrderStatus]map[OrderStatus]bool{
		StatusNew:        {StatusProcessing: true, StatusCancelled: true},
		StatusProcessing: {StatusCompleted: true, StatusFailed: true, StatusCancelled: true},
	}

	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			want := allowed[from][to]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}

			err := CheckTransition(from, to)
			if want && err != nil {
				t.Errorf("CheckTransition(%s, %s) = %v", from, to, err)
			}
			if !want && !errors.Is(err, ErrValidation) {
				t.Errorf("CheckTransition(%s, %s) = %v, want validation error", from, to, err)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range OrderStatuses {
		terminal := s == StatusCompleted || s == StatusFailed || s == StatusCancelled
		if IsTerminal(s) != terminal {
			t.Errorf("IsTerminal(%s) = %v", s, !terminal)
		}
		if terminal && len(AllowedTransitions(s)) != 0 {
			t.Errorf("%s has successors %v", s, AllowedTransitions(s))
		}
	}
	if IsTerminal("ARCHIVED") {
		t.Error("unknown status reported as terminal")
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	next := AllowedTransitions(StatusNew)
	next[0] = StatusCompleted
	if CanTransition(StatusNew, StatusCompleted) {
		t.Fatal("mutating the returned slice changed the state machine")
	}
}

func TestCheckTransitionMessage(t *testing.T) {
	err := CheckTransition(StatusNew, StatusCompleted)
	want := "Invalid status transition: NEW → COMPLETED. Allowed transitions from NEW: PROCESSING, CANCELLED"
	if err.Error() != want {
		t.Fatalf("message = %q", err.Error())
	}

	err = CheckTransition(StatusFailed, StatusNew)
	if !strings.HasSuffix(err.Error(), "none (terminal state)") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
		ok   bool
	}{
		{"NEW", StatusNew, true},
		{"processing", StatusProcessing, true},
		{"  Cancelled ", StatusCancelled, true},
		{"", "", false},
		{"DONE", "", false},
	}

	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.raw)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseOrderStatus(%q) = %s, %v", tt.raw, got, err)
		}
		if !tt.ok && !errors.Is(err, ErrValidation) {
			t.Errorf("ParseOrderStatus(%q) err = %v", tt.raw, err)
		}
	}
}
