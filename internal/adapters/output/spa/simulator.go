package spa

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spa-homekit-bridge/internal/domain/model"
)

// Simulation defaults.
const (
	defaultStartTempC = 29.0
	defaultRatePerSec = 0.02 // °C per second while the heater runs
	soakToleranceC    = 0.25 // band for "at target"
)

// Simulator is an in-memory spa driver. It stands in for the serial/network
// connection to the physical unit and mimics the behaviors the controllers
// depend on: the setpoint re-targets itself when the heating mode changes,
// and out-of-range setpoint writes are clamped by the device.
type Simulator struct {
	mu sync.RWMutex

	pumps      map[int]model.PumpLevel
	currentC   float64
	targetC    float64
	modeHigh   bool
	flow       model.FlowState
	units      model.TemperatureUnits
	ratePerSec float64
	updatedAt  time.Time
}

// NewSimulator returns a simulator heated to startTempC with the heater in
// the high range. Non-positive arguments fall back to defaults.
func NewSimulator(startTempC, ratePerSec float64) *Simulator {
	if startTempC <= 0 {
		startTempC = defaultStartTempC
	}
	if ratePerSec <= 0 {
		ratePerSec = defaultRatePerSec
	}
	return &Simulator{
		pumps:      map[int]model.PumpLevel{1: model.PumpOff, 2: model.PumpOff, 3: model.PumpOff},
		currentC:   startTempC,
		targetC:    38.0,
		modeHigh:   true,
		flow:       model.FlowGood,
		units:      model.UnitsCelsius,
		ratePerSec: ratePerSec,
		updatedAt:  time.Now(),
	}
}

func (s *Simulator) PumpLevel(index int) (model.PumpLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	level, ok := s.pumps[index]
	if !ok {
		return model.PumpOff, fmt.Errorf("spa: no pump at index %d", index)
	}
	return level, nil
}

func (s *Simulator) SetPumpLevel(index int, level model.PumpLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pumps[index]; !ok {
		return fmt.Errorf("spa: no pump at index %d", index)
	}
	s.pumps[index] = level
	return nil
}

func (s *Simulator) CurrentTemperature() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentC, nil
}

func (s *Simulator) TargetTemperature() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetC, nil
}

// SetTargetTemperature stores the setpoint, clamped into the current mode's
// range the way the physical unit does.
func (s *Simulator) SetTargetTemperature(temp float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetC = clamp(temp, s.mode().MinTemp(), s.mode().MaxTemp())
	return nil
}

func (s *Simulator) TemperatureUnits() (model.TemperatureUnits, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units, nil
}

func (s *Simulator) HeatingModeIsHigh() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modeHigh, nil
}

// SetHeatingModeIsHigh switches the range and re-targets the stored setpoint
// into it, mirroring the unit's autonomous adjustment on a range change.
func (s *Simulator) SetHeatingModeIsHigh(high bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modeHigh = high
	s.targetC = clamp(s.targetC, s.mode().MinTemp(), s.mode().MaxTemp())
	return nil
}

func (s *Simulator) IsHeatingNow() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heating(), nil
}

func (s *Simulator) FlowState() (model.FlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flow, nil
}

// SetFlowState injects a flow fault or recovery, as the physical pressure
// switch would.
func (s *Simulator) SetFlowState(flow model.FlowState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow = flow
}

// Run drifts the water temperature toward the setpoint until ctx is
// canceled.
func (s *Simulator) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(now)
		}
	}
}

func (s *Simulator) step(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := now.Sub(s.updatedAt).Seconds()
	s.updatedAt = now
	if elapsed <= 0 {
		return
	}
	if s.heating() {
		s.currentC += s.ratePerSec * elapsed
		if s.currentC > s.targetC {
			s.currentC = s.targetC
		}
	}
}

// heating assumes mu is held.
func (s *Simulator) heating() bool {
	return s.flow == model.FlowGood && s.currentC < s.targetC-soakToleranceC
}

// mode assumes mu is held.
func (s *Simulator) mode() model.HeatingMode {
	if s.modeHigh {
		return model.HeatingModeHigh
	}
	return model.HeatingModeLow
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
