package homekit

import (
	"context"
	"time"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/google/uuid"

	"spa-homekit-bridge/internal/domain/controller"
	"spa-homekit-bridge/internal/domain/model"
	"spa-homekit-bridge/internal/logger"
	"spa-homekit-bridge/internal/ports"
)

const refreshInterval = 10 * time.Second

// Bridge assembles the spa accessories and runs the HAP server.
type Bridge struct {
	server     *hap.Server
	pumps      []*Pump
	thermostat *Thermostat
	log        *logger.Logger
}

// NewBridge builds one fan accessory per configured pump plus the thermostat
// accessory, all hanging off a bridge accessory.
func NewBridge(cfg *model.Config, spa ports.SpaPort, log *logger.Logger) (*Bridge, error) {
	root := accessory.NewBridge(accessory.Info{
		Name:         cfg.Name,
		SerialNumber: uuid.NewString(),
		Manufacturer: "Balboa",
		Model:        "spa-homekit-bridge",
		Firmware:     "1.0.0",
	})
	root.A.Id = 1

	b := &Bridge{log: log}
	var accs []*accessory.A

	for _, pc := range cfg.Pumps {
		ctrl := controller.NewPump(spa, log, pc.Index, pc.Speeds)
		p := NewPump(ctrl, log, pc.Name)
		b.pumps = append(b.pumps, p)
		accs = append(accs, p.A)
		log.Infow("pump accessory registered", "name", pc.Name, "index", pc.Index, "speeds", ctrl.Speeds())
	}

	b.thermostat = NewThermostat(controller.NewThermostat(spa, log), log, cfg.Name+" Heater")
	accs = append(accs, b.thermostat.A.A)

	server, err := hap.NewServer(hap.NewFsStore(cfg.StateDir), root.A, accs...)
	if err != nil {
		return nil, err
	}
	server.Pin = cfg.Pin
	if cfg.Port != "" {
		server.Addr = ":" + cfg.Port
	}
	b.server = server

	return b, nil
}

// Run serves HAP traffic until ctx is canceled, keeping the accessories in
// sync with the spa in the background.
func (b *Bridge) Run(ctx context.Context) error {
	b.Refresh()
	go b.refreshLoop(ctx)
	return b.server.ListenAndServe(ctx)
}

// Refresh pulls live spa state into every accessory.
func (b *Bridge) Refresh() {
	for _, p := range b.pumps {
		p.Refresh()
	}
	b.thermostat.Refresh()
}

func (b *Bridge) refreshLoop(ctx context.Context) {
	t := time.NewTicker(refreshInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b.Refresh()
		}
	}
}
