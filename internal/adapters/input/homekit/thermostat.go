package homekit

import (
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/google/uuid"

	"spa-homekit-bridge/internal/domain/controller"
	"spa-homekit-bridge/internal/domain/model"
	"spa-homekit-bridge/internal/logger"
)

// Thermostat exposes the spa heater as a thermostat accessory.
type Thermostat struct {
	A *accessory.Thermostat

	ctrl *controller.Thermostat
	log  *logger.Logger
}

// NewThermostat builds the accessory and wires its write hooks into the
// thermostat controller.
func NewThermostat(ctrl *controller.Thermostat, log *logger.Logger, name string) *Thermostat {
	a := accessory.NewThermostat(accessory.Info{
		Name:         name,
		SerialNumber: uuid.NewString(),
		Manufacturer: "Balboa",
		Model:        "Spa Thermostat",
		Firmware:     "1.0.0",
	})
	svc := a.Thermostat

	// HomeKit cannot narrow an already-registered min/max when the heating
	// mode changes, so the characteristic advertises the union of both modes'
	// ranges and the controller enforces the mode's own bound at write time.
	svc.TargetTemperature.SetMinValue(model.LowModeMinTemp)
	svc.TargetTemperature.SetMaxValue(model.HighModeMaxTemp)
	svc.TargetTemperature.SetStepValue(model.TempStep)

	// The spa has no auto mode.
	svc.TargetHeatingCoolingState.ValidVals = []int{
		characteristic.TargetHeatingCoolingStateOff,
		characteristic.TargetHeatingCoolingStateHeat,
		characteristic.TargetHeatingCoolingStateCool,
	}

	t := &Thermostat{A: a, ctrl: ctrl, log: log}

	svc.TargetHeatingCoolingState.OnSetRemoteValue(func(v int) error {
		return ctrl.SetHeatingState(heatingStateFromHap(v))
	})
	svc.TargetTemperature.OnSetRemoteValue(ctrl.SetTargetTemperature)

	ctrl.OnTargetTemperatureChange(func(temp float64) {
		svc.TargetTemperature.SetValue(temp)
	})

	return t
}

// Refresh pulls the heater's live state into the characteristics.
func (t *Thermostat) Refresh() {
	svc := t.A.Thermostat

	if temp, err := t.ctrl.CurrentTemperature(); err != nil {
		t.log.Errorw("current temperature read failed", "err", err)
	} else {
		svc.CurrentTemperature.SetValue(temp)
	}

	if temp, err := t.ctrl.TargetTemperature(); err != nil {
		t.log.Errorw("target temperature read failed", "err", err)
	} else {
		svc.TargetTemperature.SetValue(temp)
	}

	if units, err := t.ctrl.DisplayUnits(); err != nil {
		t.log.Errorw("display units read failed", "err", err)
	} else {
		svc.TemperatureDisplayUnits.SetValue(unitsToHap(units))
	}

	if state, err := t.ctrl.CurrentHeatingState(); err != nil {
		t.log.Errorw("current heating state read failed", "err", err)
	} else {
		svc.CurrentHeatingCoolingState.SetValue(currentStateToHap(state))
	}

	if state, err := t.ctrl.TargetHeatingState(); err != nil {
		t.log.Errorw("target heating state read failed", "err", err)
	} else {
		svc.TargetHeatingCoolingState.SetValue(targetStateToHap(state))
	}
}

func heatingStateFromHap(v int) model.HeatingState {
	switch v {
	case characteristic.TargetHeatingCoolingStateHeat:
		return model.HeatingStateHeat
	case characteristic.TargetHeatingCoolingStateCool:
		return model.HeatingStateCool
	default:
		return model.HeatingStateOff
	}
}

func targetStateToHap(s model.HeatingState) int {
	switch s {
	case model.HeatingStateHeat:
		return characteristic.TargetHeatingCoolingStateHeat
	case model.HeatingStateCool:
		return characteristic.TargetHeatingCoolingStateCool
	default:
		return characteristic.TargetHeatingCoolingStateOff
	}
}

func currentStateToHap(s model.HeatingState) int {
	if s == model.HeatingStateHeat {
		return characteristic.CurrentHeatingCoolingStateHeat
	}
	return characteristic.CurrentHeatingCoolingStateOff
}

func unitsToHap(u model.TemperatureUnits) int {
	if u == model.UnitsFahrenheit {
		return characteristic.TemperatureDisplayUnitsFahrenheit
	}
	return characteristic.TemperatureDisplayUnitsCelsius
}
