package wizard

import (
	"errors"
	"testing"

	"divequote/internal/domain"
	"divequote/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine() *Machine {
	return New(pricing.NewEngine(nil), nil)
}

func activate(t *testing.T, m *Machine, key string) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, m.TapService(s, key))
	require.NoError(t, m.TapService(s, key))
	require.Equal(t, StateActive, s.State)
	return s
}

func TestTapService_DoubleTapArming(t *testing.T) {
	m := newMachine()
	s := NewSession()

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))
	assert.Equal(t, StateArmed, s.State)
	assert.Equal(t, domain.ServiceRecurringCleaning, s.ArmedServiceKey)
	assert.Empty(t, s.ActiveServiceKey)
	assert.Nil(t, s.Quote, "nothing is priced before the service is committed")

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, domain.ServiceRecurringCleaning, s.ActiveServiceKey)
	assert.Empty(t, s.ArmedServiceKey)
	assert.Zero(t, s.StepIndex)
	assert.Equal(t, domain.DefaultBoatConfiguration(), s.Config)
	require.NotNil(t, s.Quote)
	assert.True(t, s.Quote.RoundedTotal.Equal(decimal.NewFromInt(140)))
}

func TestTapService_Rearm(t *testing.T) {
	m := newMachine()
	s := NewSession()

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))
	require.NoError(t, m.TapService(s, domain.ServiceItemRecovery))

	assert.Equal(t, StateArmed, s.State)
	assert.Equal(t, domain.ServiceItemRecovery, s.ArmedServiceKey)

	require.NoError(t, m.TapService(s, domain.ServiceItemRecovery))
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, domain.ServiceItemRecovery, s.ActiveServiceKey)
}

func TestTapService_WhileActiveDiscardsConfig(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceOnetimeCleaning)
	require.NoError(t, m.SetAttribute(s, domain.AttrHull, "trimaran"))

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))

	assert.Equal(t, StateArmed, s.State)
	assert.Empty(t, s.ActiveServiceKey)
	assert.Equal(t, domain.HullMonohull, s.Config.HullType)
	assert.Nil(t, s.Quote)
}

func TestTapService_Unknown(t *testing.T) {
	m := newMachine()
	s := NewSession()

	err := m.TapService(s, "hull_painting")
	var unknown *domain.UnknownServiceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, StateIdle, s.State)
}

func TestNext_FlatRateSkipsToResults(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceItemRecovery)

	step, ok := m.CurrentStep(s)
	require.True(t, ok)
	assert.Equal(t, domain.StepSelection, step)

	m.Next(s)

	assert.Equal(t, StateResults, s.State)
	step, ok = m.CurrentStep(s)
	require.True(t, ok)
	assert.Equal(t, domain.StepResults, step)
	require.NotNil(t, s.Quote)
	assert.True(t, s.Quote.RoundedTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.CanCheckout())
}

func TestNext_LengthPricedVisitsEveryStep(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceRecurringCleaning)

	var visited []domain.Step
	for {
		step, ok := m.CurrentStep(s)
		require.True(t, ok)
		visited = append(visited, step)
		if s.State == StateResults {
			break
		}
		m.Next(s)
	}

	assert.Equal(t, domain.LengthPricedSteps(true, true), visited)
}

func TestNext_AnodeStepOnlyWhenIncluded(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceUnderwaterInspection)

	for s.State == StateActive {
		step, _ := m.CurrentStep(s)
		assert.NotEqual(t, domain.StepAnodes, step)
		m.Next(s)
	}
	assert.Equal(t, StateResults, s.State)
}

func TestNext_PastLastStepIsNoop(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServicePropeller)
	m.Next(s)
	require.Equal(t, StateResults, s.State)

	idx := s.StepIndex
	m.Next(s)
	m.Next(s)

	assert.Equal(t, StateResults, s.State)
	assert.Equal(t, idx, s.StepIndex)
}

func TestNext_OutsideActiveIsNoop(t *testing.T) {
	m := newMachine()
	s := NewSession()

	m.Next(s)
	assert.Equal(t, StateIdle, s.State)

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))
	m.Next(s)
	assert.Equal(t, StateArmed, s.State)
	assert.Zero(t, s.StepIndex)
}

func TestSetAttribute_RecomputesWithoutChangingStep(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceOnetimeCleaning)
	m.Next(s)
	m.Next(s)
	idx := s.StepIndex

	require.NoError(t, m.SetAttribute(s, domain.AttrLength, "55"))
	require.NoError(t, m.SetAttribute(s, domain.AttrHull, "catamaran"))
	require.NoError(t, m.SetAttribute(s, domain.AttrEngines, "twin"))
	require.NoError(t, m.SetAttribute(s, domain.AttrGrowth, "70"))

	assert.Equal(t, idx, s.StepIndex)
	assert.Equal(t, StateActive, s.State)
	require.NotNil(t, s.Quote)
	assert.True(t, s.Quote.Subtotal.Equal(decimal.RequireFromString("794.0625")), "subtotal %s", s.Quote.Subtotal)
	assert.True(t, s.Quote.RoundedTotal.Equal(decimal.NewFromInt(790)))
}

func TestSetAttribute_DegradedInputs(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceRecurringCleaning)

	require.NoError(t, m.SetAttribute(s, domain.AttrLength, "abc"))
	assert.Equal(t, domain.DefaultLengthFeet, s.Config.LengthFeet)

	require.NoError(t, m.SetAttribute(s, domain.AttrLength, "-3"))
	assert.Equal(t, domain.DefaultLengthFeet, s.Config.LengthFeet)

	require.NoError(t, m.SetAttribute(s, domain.AttrLength, "42 ft"))
	assert.Equal(t, 42.0, s.Config.LengthFeet)

	require.NoError(t, m.SetAttribute(s, domain.AttrGrowth, "180"))
	assert.Equal(t, 100.0, s.Config.GrowthLevel)

	require.NoError(t, m.SetAttribute(s, domain.AttrGrowth, "-5"))
	assert.Equal(t, 0.0, s.Config.GrowthLevel)

	require.NoError(t, m.SetAttribute(s, domain.AttrAnodes, "-1"))
	assert.Zero(t, s.Config.AnodeCount)

	require.NoError(t, m.SetAttribute(s, domain.AttrAnodes, "4"))
	assert.Equal(t, 4, s.Config.AnodeCount)
}

func TestSetAttribute_InvalidEnum(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceRecurringCleaning)
	before := s.Config

	err := m.SetAttribute(s, domain.AttrHull, "pontoon")
	var invalid *domain.InvalidAttributeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, before, s.Config)

	err = m.SetAttribute(s, "keel", "fin")
	require.True(t, errors.As(err, &invalid))
}

func TestSetAttribute_OutsideActiveIsNoop(t *testing.T) {
	m := newMachine()
	s := NewSession()

	require.NoError(t, m.SetAttribute(s, domain.AttrHull, "trimaran"))
	assert.Equal(t, domain.HullMonohull, s.Config.HullType)

	require.NoError(t, m.TapService(s, domain.ServiceRecurringCleaning))
	require.NoError(t, m.SetAttribute(s, domain.AttrHull, "trimaran"))
	assert.Equal(t, domain.HullMonohull, s.Config.HullType)
}

func TestBack_ResetsSession(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceOnetimeCleaning)
	require.NoError(t, m.SetAttribute(s, domain.AttrLength, "48"))
	m.Next(s)

	m.Back(s)

	assert.Equal(t, NewSession(), s)

	// from Armed as well
	require.NoError(t, m.TapService(s, domain.ServiceItemRecovery))
	m.Back(s)
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.ArmedServiceKey)
}

func TestRecompute_UnknownServiceDisablesCheckout(t *testing.T) {
	m := newMachine()
	s := activate(t, m, domain.ServiceItemRecovery)
	m.Next(s)
	require.True(t, s.CanCheckout())

	// a session restored against a catalog that no longer has the service
	s.ActiveServiceKey = "retired_service"
	s.State = StateActive
	require.NoError(t, m.SetAttribute(s, domain.AttrAnodes, "1"))

	assert.True(t, s.CheckoutDisabled)
	assert.Nil(t, s.Quote)
	assert.False(t, s.CanCheckout())
}

func TestService(t *testing.T) {
	m := newMachine()
	s := NewSession()

	_, ok := m.Service(s)
	assert.False(t, ok)

	require.NoError(t, m.TapService(s, domain.ServiceAnodesOnly))
	svc, ok := m.Service(s)
	require.True(t, ok)
	assert.Equal(t, "Anodes Only", svc.DisplayName)
}
