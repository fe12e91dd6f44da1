package wizard

import (
	"errors"
	"strconv"
	"strings"

	"divequote/internal/domain"
	"divequote/internal/metrics"
	"divequote/internal/pricing"

	"go.uber.org/zap"
)

// Machine applies wizard transitions to sessions and recomputes the quote
// after every change. It keeps no per-session state of its own.
type Machine struct {
	engine *pricing.Engine
	logger *zap.Logger
}

func New(engine *pricing.Engine, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{engine: engine, logger: logger}
}

func (m *Machine) Engine() *pricing.Engine { return m.engine }

// TapService arms a service on the first tap and commits it on the second
// tap of the same key. Tapping another key re-arms.
func (m *Machine) TapService(s *Session, key string) error {
	if !m.engine.Catalog().Has(key) {
		return &domain.UnknownServiceError{Key: key}
	}

	from := s.State
	switch s.State {
	case StateArmed:
		if s.ArmedServiceKey == key {
			s.ArmedServiceKey = ""
			s.ActiveServiceKey = key
			s.StepIndex = 0
			s.Config = domain.DefaultBoatConfiguration()
			s.State = StateActive
			m.recompute(s)
			break
		}
		s.ArmedServiceKey = key
	default:
		// Idle, or abandoning a service in progress.
		s.reset()
		s.ArmedServiceKey = key
		s.State = StateArmed
	}

	m.observe(from, s, "tap", zap.String("service", key))
	return nil
}

// SetAttribute updates one boat attribute and recomputes the quote. Outside
// Active it does nothing. Unparseable numbers fall back to safe values;
// unknown enum values are reported as InvalidAttributeError.
func (m *Machine) SetAttribute(s *Session, attr domain.Attribute, value string) error {
	if s.State != StateActive {
		return nil
	}

	value = strings.TrimSpace(value)
	cfg := s.Config

	switch attr {
	case domain.AttrLength:
		length, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "ft")), 64)
		if err != nil || length <= 0 {
			length = domain.DefaultLengthFeet
		}
		cfg.LengthFeet = length
		cfg.LengthFeet = cfg.EffectiveLength()
	case domain.AttrHull:
		h, err := domain.ParseHullType(value)
		if err != nil {
			return err
		}
		cfg.HullType = h
	case domain.AttrPropulsion:
		p, err := domain.ParsePropulsionType(value)
		if err != nil {
			return err
		}
		cfg.PropulsionType = p
	case domain.AttrEngines:
		e, err := domain.ParseEngineCount(value)
		if err != nil {
			return err
		}
		cfg.EngineCount = e
	case domain.AttrPaint:
		p, err := domain.ParsePaintCondition(value)
		if err != nil {
			return err
		}
		cfg.PaintCondition = p
	case domain.AttrGrowth:
		g, err := strconv.ParseFloat(value, 64)
		if err != nil {
			g = domain.MinGrowthLevel
		}
		cfg.GrowthLevel = domain.ClampGrowth(g)
	case domain.AttrAnodes:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			n = 0
		}
		cfg.AnodeCount = n
	default:
		return &domain.InvalidAttributeError{Attribute: attr, Value: value}
	}

	s.Config = cfg
	m.recompute(s)
	return nil
}

// Next advances one step. Reaching the last step of the service's
// sequence moves the session to Results.
func (m *Machine) Next(s *Session) {
	if s.State != StateActive {
		return
	}
	steps := m.Steps(s)
	if s.StepIndex >= len(steps)-1 {
		return
	}

	from := s.State
	s.StepIndex++
	if s.StepIndex == len(steps)-1 {
		s.State = StateResults
		m.recompute(s)
	}
	m.observe(from, s, "next", zap.Int("step_index", s.StepIndex))
}

// Back abandons the wizard from any state and returns to Idle.
func (m *Machine) Back(s *Session) {
	from := s.State
	s.reset()
	m.observe(from, s, "back")
}

// Steps returns the step sequence of the committed service.
func (m *Machine) Steps(s *Session) []domain.Step {
	if s.ActiveServiceKey == "" {
		return nil
	}
	svc, err := m.engine.Catalog().Get(s.ActiveServiceKey)
	if err != nil {
		return nil
	}
	return svc.StepSequence
}

// CurrentStep returns the step shown to the user, if a service is committed.
func (m *Machine) CurrentStep(s *Session) (domain.Step, bool) {
	steps := m.Steps(s)
	if s.StepIndex < 0 || s.StepIndex >= len(steps) {
		return "", false
	}
	return steps[s.StepIndex], true
}

// Service returns the definition for the armed or committed service.
func (m *Machine) Service(s *Session) (domain.ServiceDefinition, bool) {
	key := s.ActiveServiceKey
	if key == "" {
		key = s.ArmedServiceKey
	}
	if key == "" {
		return domain.ServiceDefinition{}, false
	}
	svc, err := m.engine.Catalog().Get(key)
	return svc, err == nil
}

func (m *Machine) recompute(s *Session) {
	q, err := m.engine.Quote(s.ActiveServiceKey, s.Config)
	if err != nil {
		s.Quote = nil
		var unknown *domain.UnknownServiceError
		if errors.As(err, &unknown) {
			s.CheckoutDisabled = true
		}
		metrics.ObserveQuoteFailure(s.ActiveServiceKey)
		m.logger.Error("Failed to compute quote",
			zap.String("service", s.ActiveServiceKey),
			zap.Error(err))
		return
	}
	s.Quote = &q
	s.CheckoutDisabled = false
	metrics.ObserveQuote(q.ServiceKey, string(q.Composition), q.ChargedTotal.InexactFloat64())
}

func (m *Machine) observe(from State, s *Session, event string, fields ...zap.Field) {
	if from == s.State {
		return
	}
	metrics.ObserveTransition(string(from), string(s.State))
	m.logger.Debug("Wizard transition",
		append(fields,
			zap.String("event", event),
			zap.String("from", string(from)),
			zap.String("to", string(s.State)))...)
}
