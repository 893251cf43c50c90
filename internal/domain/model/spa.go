package model

// PumpLevel is the discrete speed state of a spa pump.
type PumpLevel int

const (
	PumpOff PumpLevel = iota
	PumpLow
	PumpHigh
)

func (l PumpLevel) String() string {
	switch l {
	case PumpOff:
		return "off"
	case PumpLow:
		return "low"
	case PumpHigh:
		return "high"
	}
	return "unknown"
}

// HeatingMode is the spa's target-temperature range selector.
type HeatingMode int

const (
	HeatingModeLow HeatingMode = iota
	HeatingModeHigh
)

// Legal target-temperature bounds per heating mode, in °C. The HomeKit
// characteristic advertises the union of both ranges; the per-mode bounds are
// enforced at write time.
const (
	LowModeMinTemp  = 10.0
	LowModeMaxTemp  = 36.0
	HighModeMinTemp = 26.5
	HighModeMaxTemp = 40.0
	TempStep        = 0.5
)

// MinTemp returns the lowest legal target temperature for the mode.
func (m HeatingMode) MinTemp() float64 {
	if m == HeatingModeHigh {
		return HighModeMinTemp
	}
	return LowModeMinTemp
}

// MaxTemp returns the highest legal target temperature for the mode.
func (m HeatingMode) MaxTemp() float64 {
	if m == HeatingModeHigh {
		return HighModeMaxTemp
	}
	return LowModeMaxTemp
}

// FlowState is the device-reported water-flow health.
type FlowState int

const (
	FlowGood FlowState = iota
	FlowFailed
)

// HeatingState is the bridge-facing heating vocabulary.
type HeatingState int

const (
	HeatingStateOff HeatingState = iota
	HeatingStateHeat
	HeatingStateCool
)

// TemperatureUnits is the device's display unit flag.
type TemperatureUnits int

const (
	UnitsCelsius TemperatureUnits = iota
	UnitsFahrenheit
)
