package statemachine

import (
	"errors"
	"strings"

	"reservation-api/models"
)

// Actor is the party driving a reservation transition.
type Actor string

const (
	ActorOwner Actor = "owner"
	ActorAdmin Actor = "admin"
)

// ErrInvalidTransition is returned (wrapped) by CanTransition.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.ReservationStatus `json:"from"`
	To    models.ReservationStatus `json:"to"`
	Actor Actor                    `json:"actor"`
}

// validTransitions is the authoritative reservation lifecycle
var validTransitions = []Transition{
	// A complete request is persisted straight away
	{From: models.StatusRequested, To: models.StatusActive, Actor: ActorOwner},
	{From: models.StatusRequested, To: models.StatusActive, Actor: ActorAdmin},
	// Only admins change date, time or party size
	{From: models.StatusActive, To: models.StatusModified, Actor: ActorAdmin},
	{From: models.StatusModified, To: models.StatusModified, Actor: ActorAdmin},
	// Owners cancel their own booking, admins remove any
	{From: models.StatusActive, To: models.StatusDeleted, Actor: ActorOwner},
	{From: models.StatusActive, To: models.StatusDeleted, Actor: ActorAdmin},
	{From: models.StatusModified, To: models.StatusDeleted, Actor: ActorOwner},
	{From: models.StatusModified, To: models.StatusDeleted, Actor: ActorAdmin},
}

type transitionKey struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.ReservationStatus) []models.ReservationStatus {
	var nexts []models.ReservationStatus
	seen := map[models.ReservationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.ReservationStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return &TransitionError{From: from, To: to, Actor: actor}
}

// TransitionError describes a rejected transition.
type TransitionError struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
	Actor Actor
}

func (e *TransitionError) Error() string {
	return "invalid transition: " + string(e.From) + " → " + string(e.To) +
		" is not allowed for actor '" + string(e.Actor) + "'. " +
		"Valid transitions from " + string(e.From) + " are: " + describeValidFrom(e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func describeValidFrom(status models.ReservationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// TerminalStates lists states with no outgoing transition.
func TerminalStates() []models.ReservationStatus {
	var out []models.ReservationStatus
	for _, s := range []models.ReservationStatus{
		models.StatusRequested, models.StatusActive, models.StatusModified, models.StatusDeleted,
	} {
		if len(ValidTransitionsFrom(s)) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
