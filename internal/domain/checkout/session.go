package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Step represents the state of a checkout session
type Step string

const (
	StepCart               Step = "cart"
	StepCollectingLocation Step = "collecting_location"
	StepSubmitting         Step = "submitting"
	StepSuccess            Step = "success"
	StepError              Step = "error"
)

// IsValid checks if the step is a known checkout step
func (s Step) IsValid() bool {
	switch s {
	case StepCart, StepCollectingLocation, StepSubmitting, StepSuccess, StepError:
		return true
	}
	return false
}

// String returns the string representation of the step
func (s Step) String() string {
	return string(s)
}

// CanTransitionTo checks if the step can transition to the target step.
// Success is terminal; error returns to collecting_location for retry.
func (s Step) CanTransitionTo(target Step) bool {
	switch s {
	case StepCart:
		return target == StepCollectingLocation
	case StepCollectingLocation:
		return target == StepSubmitting
	case StepSubmitting:
		return target == StepSuccess || target == StepError
	case StepError:
		return target == StepCollectingLocation
	case StepSuccess:
		return false
	}
	return false
}

// Session is the ephemeral, UI-scoped state of one checkout attempt. It is
// created when the checkout surface opens with a non-empty cart and
// destroyed when the surface closes or submission succeeds.
type Session struct {
	ID        uuid.UUID
	OwnerID   string
	Step      Step
	Location  DeliveryLocation
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates a checkout session in the initial cart step.
func NewSession(ownerID string) (*Session, error) {
	if ownerID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Session owner cannot be empty")
	}
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Step:      StepCart,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BeginLocationCapture moves the session into the collecting_location step
// after the user confirms intent to pay on delivery.
func (s *Session) BeginLocationCapture() error {
	if !s.Step.CanTransitionTo(StepCollectingLocation) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot collect location in %s step", s.Step))
	}
	s.Step = StepCollectingLocation
	s.UpdatedAt = time.Now()
	return nil
}

// SetCoordinates stores captured coordinates, overwriting any previous
// capture (manual pin adjustment uses the same path).
func (s *Session) SetCoordinates(lat, lng float64) {
	s.Location.Coords = &Coordinates{Lat: lat, Lng: lng}
	s.UpdatedAt = time.Now()
}

// SetAddress stores the manually typed fallback address.
func (s *Session) SetAddress(address string) {
	s.Location.Address = address
	s.UpdatedAt = time.Now()
}

// SetNote attaches the optional free-text location note.
func (s *Session) SetNote(note string) {
	s.Location.Note = note
	s.UpdatedAt = time.Now()
}

// StartSubmitting validates the captured location and moves the session
// into the submitting step. Without coordinates or a manual address the
// transition is refused and the step is left unchanged.
func (s *Session) StartSubmitting() error {
	if s.Step == StepSubmitting {
		return shared.ErrSubmitPending
	}
	if !s.Step.CanTransitionTo(StepSubmitting) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit in %s step", s.Step))
	}
	if !s.Location.IsUsable() {
		return shared.ErrNoLocation
	}
	s.Step = StepSubmitting
	s.LastError = ""
	s.UpdatedAt = time.Now()
	return nil
}

// Succeed marks the submission complete. Success is terminal.
func (s *Session) Succeed() error {
	if !s.Step.CanTransitionTo(StepSuccess) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot succeed in %s step", s.Step))
	}
	s.Step = StepSuccess
	s.UpdatedAt = time.Now()
	return nil
}

// Fail records the submission failure reason and enters the error step.
func (s *Session) Fail(reason string) error {
	if !s.Step.CanTransitionTo(StepError) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail in %s step", s.Step))
	}
	s.Step = StepError
	s.LastError = reason
	s.UpdatedAt = time.Now()
	return nil
}

// Retry returns an errored session to location collection so the user can
// adjust and resubmit. The captured location is kept.
func (s *Session) Retry() error {
	if !s.Step.CanTransitionTo(StepCollectingLocation) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot retry in %s step", s.Step))
	}
	s.Step = StepCollectingLocation
	s.UpdatedAt = time.Now()
	return nil
}

// AbortSubmission returns a submitting session to location collection
// without recording an error. Used when submission is refused before any
// order was attempted, e.g. on an authentication failure.
func (s *Session) AbortSubmission() {
	if s.Step == StepSubmitting {
		s.Step = StepCollectingLocation
		s.UpdatedAt = time.Now()
	}
}
