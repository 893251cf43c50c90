package homekit

import (
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	"github.com/google/uuid"

	"spa-homekit-bridge/internal/domain/controller"
	"spa-homekit-bridge/internal/logger"
)

// pumpService is a Fan service carrying On plus RotationSpeed.
type pumpService struct {
	*service.S

	On            *characteristic.On
	RotationSpeed *characteristic.RotationSpeed
}

func newPumpService() *pumpService {
	s := pumpService{}
	s.S = service.New(service.TypeFan)

	s.On = characteristic.NewOn()
	s.AddC(s.On.C)

	s.RotationSpeed = characteristic.NewRotationSpeed()
	s.AddC(s.RotationSpeed.C)

	return &s
}

// Pump exposes one spa pump as a fan accessory.
type Pump struct {
	A   *accessory.A
	Fan *pumpService

	ctrl *controller.Pump
	log  *logger.Logger
}

// NewPump builds the accessory and wires its write hooks into the pump
// controller. A rejected write surfaces to the paired controller as a HAP
// error.
func NewPump(ctrl *controller.Pump, log *logger.Logger, name string) *Pump {
	a := accessory.New(accessory.Info{
		Name:         name,
		SerialNumber: uuid.NewString(),
		Manufacturer: "Balboa",
		Model:        "Spa Pump",
		Firmware:     "1.0.0",
	}, accessory.TypeFan)

	fan := newPumpService()
	// One discrete step per configured speed, so the Home app slider snaps to
	// the levels the pump actually has.
	fan.RotationSpeed.SetStepValue(100 / float64(ctrl.Speeds()))
	a.AddS(fan.S)

	p := &Pump{A: a, Fan: fan, ctrl: ctrl, log: log}

	fan.On.OnSetRemoteValue(func(on bool) error {
		if on {
			return ctrl.TurnOn()
		}
		return ctrl.TurnOff()
	})
	fan.RotationSpeed.OnSetRemoteValue(ctrl.SetSpeedPercent)

	return p
}

// Refresh pulls the pump's live state into the characteristics.
func (p *Pump) Refresh() {
	on, err := p.ctrl.IsOn()
	if err != nil {
		p.log.Errorw("pump state read failed", "err", err)
		return
	}
	p.Fan.On.SetValue(on)

	percent, err := p.ctrl.SpeedPercent()
	if err != nil {
		p.log.Errorw("pump speed read failed", "err", err)
		return
	}
	p.Fan.RotationSpeed.SetValue(percent)
}
