package model

// PumpConfig describes one physical pump exposed as an accessory.
type PumpConfig struct {
	Name   string `mapstructure:"name"`
	Index  int    `mapstructure:"index"`  // physical pump index, 1..3
	Speeds int    `mapstructure:"speeds"` // speed setting count, 1 or 2
}

// Config is the runtime configuration of the bridge.
type Config struct {
	Name      string       `mapstructure:"name"`
	Pin       string       `mapstructure:"pin"`
	Port      string       `mapstructure:"port"`
	StateDir  string       `mapstructure:"state_dir"`
	Pumps     []PumpConfig `mapstructure:"pumps"`
	Simulator SimConfig    `mapstructure:"simulator"`
}

// SimConfig tunes the in-process spa driver.
type SimConfig struct {
	StartTempC float64 `mapstructure:"start_temp_c"`
	RatePerSec float64 `mapstructure:"rate_per_sec"` // °C per second while heating
}
