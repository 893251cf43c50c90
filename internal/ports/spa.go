package ports

import (
	"spa-homekit-bridge/internal/domain/model"
)

// SpaPort is the device oracle: the driver holding live state of the physical
// spa. All calls are synchronous and non-blocking; any network round-trip to
// the unit happens inside the driver ahead of time.
type SpaPort interface {
	PumpLevel(index int) (model.PumpLevel, error)
	SetPumpLevel(index int, level model.PumpLevel) error

	CurrentTemperature() (float64, error)
	TargetTemperature() (float64, error)
	SetTargetTemperature(temp float64) error
	TemperatureUnits() (model.TemperatureUnits, error)

	HeatingModeIsHigh() (bool, error)
	SetHeatingModeIsHigh(high bool) error
	IsHeatingNow() (bool, error)
	FlowState() (model.FlowState, error)
}
