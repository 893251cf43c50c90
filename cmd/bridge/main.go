package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"spa-homekit-bridge/internal/adapters/input/homekit"
	"spa-homekit-bridge/internal/adapters/output/spa"
	"spa-homekit-bridge/internal/domain/model"
	"spa-homekit-bridge/internal/logger"
)

const simTick = 1 * time.Second

func main() {
	log := logger.Get(logger.InfoLevel)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// The simulated driver stands in for the physical unit; it satisfies the
	// same port a real serial/network driver would.
	driver := spa.NewSimulator(cfg.Simulator.StartTempC, cfg.Simulator.RatePerSec)

	bridge, err := homekit.NewBridge(cfg, driver, log)
	if err != nil {
		log.Fatalw("failed to build bridge", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go driver.Run(ctx, simTick)

	log.Infow("bridge running", "name", cfg.Name, "pin", cfg.Pin)
	if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalw("bridge stopped", "err", err)
	}
}

// loadConfig reads configs/config.yml, falling back to defaults when the file
// is absent.
func loadConfig() (*model.Config, error) {
	viper.SetDefault("name", "Spa")
	viper.SetDefault("pin", "00102003")
	viper.SetDefault("state_dir", "./db")

	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg model.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Pumps) == 0 {
		cfg.Pumps = []model.PumpConfig{{Name: "Spa Pump", Index: 1, Speeds: 2}}
	}
	return &cfg, nil
}
