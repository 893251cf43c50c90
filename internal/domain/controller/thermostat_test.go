package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spa-homekit-bridge/internal/domain/model"
)

func newTestThermostat(spa *fakeSpa) (*Thermostat, *[]float64) {
	th := NewThermostat(spa, testLog)
	published := []float64{}
	th.OnTargetTemperatureChange(func(temp float64) {
		published = append(published, temp)
	})
	return th, &published
}

func TestSetHeatingStateOffRejectedWhileFlowGood(t *testing.T) {
	spa := newFakeSpa()
	th, _ := newTestThermostat(spa)

	err := th.SetHeatingState(model.HeatingStateOff)
	assert.ErrorIs(t, err, ErrHeaterAlwaysOn)
	assert.True(t, spa.modeHigh, "mode must be unchanged")
	assert.Zero(t, spa.modeWrites)
}

func TestSetHeatingStateOffAcceptedWhileFlowFailed(t *testing.T) {
	spa := newFakeSpa()
	spa.flow = model.FlowFailed
	th, _ := newTestThermostat(spa)

	// The fault already forces the reported state off; accepting the request
	// must not write anything.
	require.NoError(t, th.SetHeatingState(model.HeatingStateOff))
	assert.Zero(t, spa.modeWrites)
}

func TestSetHeatingStateVetoedWhileFlowFailed(t *testing.T) {
	spa := newFakeSpa()
	spa.flow = model.FlowFailed
	th, _ := newTestThermostat(spa)

	for _, requested := range []model.HeatingState{model.HeatingStateHeat, model.HeatingStateCool} {
		err := th.SetHeatingState(requested)
		assert.ErrorIs(t, err, ErrFlowFault)
	}
	assert.True(t, spa.modeHigh, "mode must be unchanged")
	assert.Zero(t, spa.modeWrites)
}

func TestSetHeatingStateMapsHeatAndCool(t *testing.T) {
	spa := newFakeSpa()
	th, _ := newTestThermostat(spa)

	require.NoError(t, th.SetHeatingState(model.HeatingStateCool))
	assert.False(t, spa.modeHigh)

	require.NoError(t, th.SetHeatingState(model.HeatingStateHeat))
	assert.True(t, spa.modeHigh)
}

func TestSetHeatingStateRepublishesAdjustedTarget(t *testing.T) {
	spa := newFakeSpa()
	spa.targetC = 38.0
	th, published := newTestThermostat(spa)

	// Dropping to the low range makes the device pull 38.0 down to 36.0; that
	// adjusted value must reach the framework immediately.
	require.NoError(t, th.SetHeatingState(model.HeatingStateCool))
	require.Len(t, *published, 1)
	assert.Equal(t, 36.0, (*published)[0])
}

func TestSetTargetTemperatureTooLowInHighMode(t *testing.T) {
	spa := newFakeSpa()
	th, published := newTestThermostat(spa)

	err := th.SetTargetTemperature(20.0)
	assert.ErrorIs(t, err, ErrTargetOutOfRange)

	require.Len(t, *published, 1)
	assert.Equal(t, model.HighModeMinTemp, (*published)[0])
	assert.Equal(t, 38.0, spa.targetC, "rejected value must not reach the spa")
	assert.Zero(t, spa.targetWrites)
}

func TestSetTargetTemperatureTooHighInLowMode(t *testing.T) {
	spa := newFakeSpa()
	spa.modeHigh = false
	spa.targetC = 34.0
	th, published := newTestThermostat(spa)

	err := th.SetTargetTemperature(37.0)
	assert.ErrorIs(t, err, ErrTargetOutOfRange)

	require.Len(t, *published, 1)
	assert.Equal(t, model.LowModeMaxTemp, (*published)[0])
	assert.Equal(t, 34.0, spa.targetC)
}

func TestSetTargetTemperatureAccepted(t *testing.T) {
	spa := newFakeSpa()
	th, published := newTestThermostat(spa)

	require.NoError(t, th.SetTargetTemperature(30.0))
	assert.Empty(t, *published)

	got, err := th.TargetTemperature()
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)
}

func TestTargetHeatingState(t *testing.T) {
	tests := []struct {
		name     string
		flow     model.FlowState
		modeHigh bool
		want     model.HeatingState
	}{
		{"flow failed overrides high", model.FlowFailed, true, model.HeatingStateOff},
		{"flow failed overrides low", model.FlowFailed, false, model.HeatingStateOff},
		{"high reports heat", model.FlowGood, true, model.HeatingStateHeat},
		{"low reports cool", model.FlowGood, false, model.HeatingStateCool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spa := newFakeSpa()
			spa.flow = tt.flow
			spa.modeHigh = tt.modeHigh
			th, _ := newTestThermostat(spa)

			got, err := th.TargetHeatingState()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentHeatingState(t *testing.T) {
	spa := newFakeSpa()
	th, _ := newTestThermostat(spa)

	spa.heating = true
	got, err := th.CurrentHeatingState()
	require.NoError(t, err)
	assert.Equal(t, model.HeatingStateHeat, got)

	spa.heating = false
	got, err = th.CurrentHeatingState()
	require.NoError(t, err)
	assert.Equal(t, model.HeatingStateOff, got)
}

func TestThermostatReadPassthroughs(t *testing.T) {
	spa := newFakeSpa()
	spa.currentC = 31.5
	spa.units = model.UnitsFahrenheit
	th, _ := newTestThermostat(spa)

	temp, err := th.CurrentTemperature()
	require.NoError(t, err)
	assert.Equal(t, 31.5, temp)

	units, err := th.DisplayUnits()
	require.NoError(t, err)
	assert.Equal(t, model.UnitsFahrenheit, units)
}

func TestThermostatOracleErrorsPropagate(t *testing.T) {
	spa := newFakeSpa()
	th, published := newTestThermostat(spa)
	boom := errors.New("link down")
	spa.err = boom

	assert.ErrorIs(t, th.SetHeatingState(model.HeatingStateHeat), boom)
	assert.ErrorIs(t, th.SetTargetTemperature(30.0), boom)

	_, err := th.CurrentTemperature()
	assert.ErrorIs(t, err, boom)
	_, err = th.TargetHeatingState()
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, *published)
}
