package actions

import (
	"errors"

	"superapp-api/statemachine"
)

var (
	// ErrValidation marks a missing or out-of-range input field.
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	// ErrAlreadyClaimed is returned to the partner who lost an accept race.
	ErrAlreadyClaimed = errors.New("order already claimed by another partner")
	// ErrPartnerBusy is returned when a partner with an order in progress tries to accept another.
	ErrPartnerBusy = errors.New("partner already has an active order")
	ErrNotAssigned = errors.New("not the assigned partner for this order")

	ErrInvalidTransition = statemachine.ErrInvalidTransition
)
