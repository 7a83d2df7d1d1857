package statemachine

import (
	"errors"
	"strings"
	"testing"

	"reservation-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.ReservationStatus
		to    models.ReservationStatus
		actor Actor
		ok    bool
	}{
		{"owner persists request", models.StatusRequested, models.StatusActive, ActorOwner, true},
		{"admin modifies active", models.StatusActive, models.StatusModified, ActorAdmin, true},
		{"admin modifies again", models.StatusModified, models.StatusModified, ActorAdmin, true},
		{"owner cannot modify", models.StatusActive, models.StatusModified, ActorOwner, false},
		{"owner cancels active", models.StatusActive, models.StatusDeleted, ActorOwner, true},
		{"owner cancels modified", models.StatusModified, models.StatusDeleted, ActorOwner, true},
		{"admin deletes modified", models.StatusModified, models.StatusDeleted, ActorAdmin, true},
		{"deleted is terminal", models.StatusDeleted, models.StatusActive, ActorAdmin, false},
		{"no skipping request", models.StatusRequested, models.StatusModified, ActorAdmin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok && err != nil {
				t.Fatalf("CanTransition(%s, %s, %s) = %v, want nil", tt.from, tt.to, tt.actor, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("CanTransition(%s, %s, %s) = nil, want error", tt.from, tt.to, tt.actor)
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("error %v does not wrap ErrInvalidTransition", err)
				}
			}
		})
	}
}

func TestTransitionErrorListsAlternatives(t *testing.T) {
	err := CanTransition(models.StatusActive, models.StatusRequested, ActorAdmin)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "MODIFIED") || !strings.Contains(msg, "DELETED") {
		t.Errorf("message %q should list MODIFIED and DELETED", msg)
	}

	err = CanTransition(models.StatusDeleted, models.StatusActive, ActorAdmin)
	if !strings.Contains(err.Error(), "terminal state") {
		t.Errorf("message %q should mention terminal state", err.Error())
	}
}

func TestTerminalStates(t *testing.T) {
	got := TerminalStates()
	if len(got) != 1 || got[0] != models.StatusDeleted {
		t.Fatalf("TerminalStates() = %v, want [DELETED]", got)
	}
}

func TestValidTransitionsFromDeduplicates(t *testing.T) {
	got := ValidTransitionsFrom(models.StatusRequested)
	if len(got) != 1 || got[0] != models.StatusActive {
		t.Fatalf("ValidTransitionsFrom(REQUESTED) = %v, want [ACTIVE]", got)
	}
}
