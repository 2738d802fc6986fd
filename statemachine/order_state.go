package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"superapp-api/models"
)

// ErrInvalidTransition is returned for any move the table does not list.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
	Label string             `json:"label"`
}

// validTransitions is the authoritative state machine definition.
// cancelled has no entry: nothing in the product moves an order there.
var validTransitions = []Transition{
	// Any partner claims a pending order
	{From: models.StatusPending, To: models.StatusAccepted, Actor: models.RoleDelivery, Label: "accept"},
	// The bound partner walks it forward one step at a time
	{From: models.StatusAccepted, To: models.StatusAtStore, Actor: models.RoleDelivery, Label: "at origin"},
	{From: models.StatusAtStore, To: models.StatusOnTheWay, Actor: models.RoleDelivery, Label: "on the way"},
	{From: models.StatusOnTheWay, To: models.StatusDelivered, Actor: models.RoleDelivery, Label: "delivered"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// Next returns the single forward step from status, if there is one.
func Next(status models.OrderStatus) (models.OrderStatus, bool) {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "", false
	}
	return nexts[0], true
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for actor '%s'; valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

// Terminal reports whether no transition leaves status.
func Terminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
