package controller

import (
	"errors"
	"fmt"

	"spa-homekit-bridge/internal/domain/model"
	"spa-homekit-bridge/internal/logger"
	"spa-homekit-bridge/internal/ports"
)

var (
	// ErrHeaterAlwaysOn rejects turning the display mode off while water is
	// flowing; the spa has no independent heater-off state in that condition,
	// so accepting the request would misrepresent the device.
	ErrHeaterAlwaysOn = errors.New("heater cannot be switched off while water flow is good")

	// ErrFlowFault rejects mode changes while the flow fault is active; the
	// mode is only reportable, not settable, until flow recovers.
	ErrFlowFault = errors.New("heating mode cannot be changed while water flow has failed")

	// ErrTargetOutOfRange rejects a target temperature outside the current
	// heating mode's legal range.
	ErrTargetOutOfRange = errors.New("target temperature outside the current mode's range")
)

// Thermostat translates HomeKit heating-state and target-temperature traffic
// into spa heating-mode and setpoint writes. The spa's legal temperature
// range depends on the current mode (low [10.0, 36.0], high [26.5, 40.0]),
// and mode changes are vetoed while a water-flow fault is active.
type Thermostat struct {
	spa ports.SpaPort
	log *logger.Logger

	// publishTarget pushes a target temperature back to the framework, used
	// after clamping and after the device auto-adjusts its setpoint on a mode
	// change. Installed by the accessory adapter.
	publishTarget func(temp float64)
}

func NewThermostat(spa ports.SpaPort, log *logger.Logger) *Thermostat {
	return &Thermostat{spa: spa, log: log}
}

// OnTargetTemperatureChange installs the framework push callback.
func (t *Thermostat) OnTargetTemperatureChange(fn func(temp float64)) {
	t.publishTarget = fn
}

// SetHeatingState handles a TargetHeatingCoolingState write. Heat selects the
// high range, Cool the low range. Off is only accepted while the flow fault
// already forces the reported state off; any real mode change during the
// fault is rejected.
func (t *Thermostat) SetHeatingState(requested model.HeatingState) error {
	flow, err := t.spa.FlowState()
	if err != nil {
		return err
	}

	if requested == model.HeatingStateOff {
		if flow == model.FlowGood {
			return ErrHeaterAlwaysOn
		}
		// Flow has failed, so the reported state is already off. Nothing to
		// write.
		return nil
	}

	if flow == model.FlowFailed {
		return ErrFlowFault
	}

	high := requested == model.HeatingStateHeat
	if err := t.spa.SetHeatingModeIsHigh(high); err != nil {
		return err
	}
	t.log.Infow("heating mode changed", "high", high)

	// The spa autonomously re-targets its setpoint when the range changes, so
	// re-read it and push it out instead of waiting for the next poll.
	temp, err := t.spa.TargetTemperature()
	if err != nil {
		return err
	}
	t.publish(temp)
	return nil
}

// SetTargetTemperature handles a TargetTemperature write, enforcing the
// current mode's range. An out-of-range request pushes the clamped value back
// to the framework and is rejected; the spa's stored setpoint is untouched.
func (t *Thermostat) SetTargetTemperature(temp float64) error {
	high, err := t.spa.HeatingModeIsHigh()
	if err != nil {
		return err
	}

	if high && temp < model.HighModeMinTemp {
		t.publish(model.HighModeMinTemp)
		return fmt.Errorf("%w: %.1f°C is below the high range minimum %.1f°C",
			ErrTargetOutOfRange, temp, model.HighModeMinTemp)
	}
	if !high && temp > model.LowModeMaxTemp {
		t.publish(model.LowModeMaxTemp)
		return fmt.Errorf("%w: %.1f°C is above the low range maximum %.1f°C",
			ErrTargetOutOfRange, temp, model.LowModeMaxTemp)
	}

	return t.spa.SetTargetTemperature(temp)
}

// CurrentTemperature returns the spa's water temperature.
func (t *Thermostat) CurrentTemperature() (float64, error) {
	return t.spa.CurrentTemperature()
}

// TargetTemperature returns the spa's current setpoint.
func (t *Thermostat) TargetTemperature() (float64, error) {
	return t.spa.TargetTemperature()
}

// DisplayUnits returns the unit the spa panel displays in.
func (t *Thermostat) DisplayUnits() (model.TemperatureUnits, error) {
	return t.spa.TemperatureUnits()
}

// CurrentHeatingState reports Heat while the heater element is running.
func (t *Thermostat) CurrentHeatingState() (model.HeatingState, error) {
	heating, err := t.spa.IsHeatingNow()
	if err != nil {
		return model.HeatingStateOff, err
	}
	if heating {
		return model.HeatingStateHeat, nil
	}
	return model.HeatingStateOff, nil
}

// TargetHeatingState maps the spa's mode to the framework vocabulary: high
// range reports Heat, low range reports Cool. A flow fault overrides either
// to Off.
func (t *Thermostat) TargetHeatingState() (model.HeatingState, error) {
	flow, err := t.spa.FlowState()
	if err != nil {
		return model.HeatingStateOff, err
	}
	if flow == model.FlowFailed {
		return model.HeatingStateOff, nil
	}
	high, err := t.spa.HeatingModeIsHigh()
	if err != nil {
		return model.HeatingStateOff, err
	}
	if high {
		return model.HeatingStateHeat, nil
	}
	return model.HeatingStateCool, nil
}

// publish is best effort. Paired with the error the callers return, either
// the push or the rejection refreshes the controller's view.
// TODO: verify against a paired Home app whether the pushed value alone
// refreshes the display, or only the rejection does.
func (t *Thermostat) publish(temp float64) {
	if t.publishTarget != nil {
		t.publishTarget(temp)
	}
}
