package controller

import (
	"fmt"

	"spa-homekit-bridge/internal/domain/model"
)

// fakeSpa is an in-memory SpaPort for controller tests. Setting err makes
// every call fail with it. Mode changes re-target the stored setpoint into
// the new range, mirroring the physical unit.
type fakeSpa struct {
	pumps    map[int]model.PumpLevel
	currentC float64
	targetC  float64
	modeHigh bool
	flow     model.FlowState
	units    model.TemperatureUnits
	heating  bool

	err          error
	modeWrites   int
	targetWrites int
}

func newFakeSpa() *fakeSpa {
	return &fakeSpa{
		pumps:    map[int]model.PumpLevel{1: model.PumpOff, 2: model.PumpOff, 3: model.PumpOff},
		currentC: 30.0,
		targetC:  38.0,
		modeHigh: true,
		flow:     model.FlowGood,
	}
}

func (f *fakeSpa) PumpLevel(index int) (model.PumpLevel, error) {
	if f.err != nil {
		return model.PumpOff, f.err
	}
	level, ok := f.pumps[index]
	if !ok {
		return model.PumpOff, fmt.Errorf("no pump %d", index)
	}
	return level, nil
}

func (f *fakeSpa) SetPumpLevel(index int, level model.PumpLevel) error {
	if f.err != nil {
		return f.err
	}
	f.pumps[index] = level
	return nil
}

func (f *fakeSpa) CurrentTemperature() (float64, error) {
	return f.currentC, f.err
}

func (f *fakeSpa) TargetTemperature() (float64, error) {
	return f.targetC, f.err
}

func (f *fakeSpa) SetTargetTemperature(temp float64) error {
	if f.err != nil {
		return f.err
	}
	f.targetWrites++
	f.targetC = temp
	return nil
}

func (f *fakeSpa) TemperatureUnits() (model.TemperatureUnits, error) {
	return f.units, f.err
}

func (f *fakeSpa) HeatingModeIsHigh() (bool, error) {
	return f.modeHigh, f.err
}

func (f *fakeSpa) SetHeatingModeIsHigh(high bool) error {
	if f.err != nil {
		return f.err
	}
	f.modeWrites++
	f.modeHigh = high
	mode := model.HeatingModeLow
	if high {
		mode = model.HeatingModeHigh
	}
	if f.targetC < mode.MinTemp() {
		f.targetC = mode.MinTemp()
	}
	if f.targetC > mode.MaxTemp() {
		f.targetC = mode.MaxTemp()
	}
	return nil
}

func (f *fakeSpa) IsHeatingNow() (bool, error) {
	return f.heating, f.err
}

func (f *fakeSpa) FlowState() (model.FlowState, error) {
	return f.flow, f.err
}
