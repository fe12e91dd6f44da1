package wizard

import (
	"divequote/internal/domain"
	"divequote/internal/pricing"
)

type State string

const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateActive  State = "active"
	StateResults State = "results"
)

// Session is the progress of one user through the wizard. It is owned by a
// single caller and only changed through Machine methods.
type Session struct {
	State            State                   `json:"state"`
	ArmedServiceKey  string                  `json:"armed_service_key,omitempty"`
	ActiveServiceKey string                  `json:"active_service_key,omitempty"`
	StepIndex        int                     `json:"step_index"`
	Config           domain.BoatConfiguration `json:"config"`
	Quote            *pricing.QuoteBreakdown `json:"quote,omitempty"`
	CheckoutDisabled bool                    `json:"checkout_disabled,omitempty"`
}

func NewSession() *Session {
	return &Session{
		State:  StateIdle,
		Config: domain.DefaultBoatConfiguration(),
	}
}

// reset returns the session to Idle and discards everything collected.
func (s *Session) reset() {
	*s = *NewSession()
}

// CanCheckout reports whether the rounded total may be handed to the
// charge collaborator.
func (s *Session) CanCheckout() bool {
	return s.State == StateResults && s.Quote != nil && !s.CheckoutDisabled
}
