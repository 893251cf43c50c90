package controller

import (
	"math"

	"spa-homekit-bridge/internal/domain/model"
	"spa-homekit-bridge/internal/logger"
	"spa-homekit-bridge/internal/ports"
)

const (
	minPumpIndex = 1
	maxPumpIndex = 3
)

// Pump translates on/off and percentage-speed requests into discrete pump
// levels for a single physical pump. It remembers the last non-zero level so
// a plain on toggle reproduces the previously chosen speed.
type Pump struct {
	spa    ports.SpaPort
	log    *logger.Logger
	index  int
	speeds int
	last   model.PumpLevel // last non-zero level, sticky across off toggles
}

// NewPump returns a controller for the pump at the given physical index.
// speeds is the pump's speed setting count; anything outside {1, 2} is
// corrected to 1 with a warning.
func NewPump(spa ports.SpaPort, log *logger.Logger, index, speeds int) *Pump {
	if speeds != 1 && speeds != 2 {
		log.Warnw("invalid pump speed setting count, using 1", "pump", index, "speeds", speeds)
		speeds = 1
	}
	return &Pump{
		spa:    spa,
		log:    log,
		index:  index,
		speeds: speeds,
		last:   model.PumpHigh,
	}
}

// Speeds returns the corrected speed setting count.
func (p *Pump) Speeds() int {
	return p.speeds
}

// TurnOn sets the pump to its last non-zero level.
func (p *Pump) TurnOn() error {
	return p.spa.SetPumpLevel(p.index, p.last)
}

// TurnOff stops the pump. The last non-zero level is kept so the next on
// toggle restores it.
func (p *Pump) TurnOff() error {
	return p.spa.SetPumpLevel(p.index, model.PumpOff)
}

// IsOn reports whether the pump currently runs at any non-zero level.
func (p *Pump) IsOn() (bool, error) {
	level, err := p.level()
	if err != nil {
		return false, err
	}
	return level != model.PumpOff, nil
}

// SetSpeedPercent maps a 0..100 percentage onto a discrete level and writes
// it. A non-zero result updates the sticky last level.
func (p *Pump) SetSpeedPercent(percent float64) error {
	// Round half to even so a midpoint request on a 1-speed pump (50%)
	// resolves to off instead of snapping up to high.
	step := int(math.RoundToEven(percent * float64(p.speeds) / 100))
	if step < 0 {
		step = 0
	}
	if step > p.speeds {
		step = p.speeds
	}
	level := p.levelForStep(step)
	if err := p.spa.SetPumpLevel(p.index, level); err != nil {
		return err
	}
	if level != model.PumpOff {
		p.last = level
	}
	return nil
}

// SpeedPercent reads the current level and returns it as a 0..100 percentage.
func (p *Pump) SpeedPercent() (float64, error) {
	level, err := p.level()
	if err != nil {
		return 0, err
	}
	return float64(p.stepForLevel(level)) * 100 / float64(p.speeds), nil
}

// level reads the oracle, degrading an unrecognized pump index to Off instead
// of failing; a wrong index is a configuration mistake, not a runtime fault.
func (p *Pump) level() (model.PumpLevel, error) {
	if p.index < minPumpIndex || p.index > maxPumpIndex {
		p.log.Warnw("unrecognized pump index, reporting off", "pump", p.index)
		return model.PumpOff, nil
	}
	return p.spa.PumpLevel(p.index)
}

// levelForStep converts a discrete step in [0, speeds] to a pump level. The
// highest step is always PumpHigh, so a 1-speed pump only ever runs high.
func (p *Pump) levelForStep(step int) model.PumpLevel {
	switch {
	case step <= 0:
		return model.PumpOff
	case step >= p.speeds:
		return model.PumpHigh
	default:
		return model.PumpLow
	}
}

func (p *Pump) stepForLevel(level model.PumpLevel) int {
	switch level {
	case model.PumpHigh:
		return p.speeds
	case model.PumpLow:
		return 1
	default:
		return 0
	}
}
