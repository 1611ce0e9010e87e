package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
	"github.com/team-vortex/swervebot/go-controller/pkg/config"
	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
	"github.com/team-vortex/swervebot/go-controller/pkg/sparkmax"
	"github.com/team-vortex/swervebot/go-controller/pkg/swervemodule"
	"github.com/team-vortex/swervebot/go-controller/pkg/thriftyenc"
)

func main() {
	fmt.Print("---- Swervebot ----\n\n")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	configFile := flag.String("config", "/cfg/swerve.yaml", "drivetrain config file")
	dummyHW := flag.Bool("dummy", false, "use simulated hardware")
	flag.Parse()

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		log.WithField("signal", s).Info("Shutting down")
		cancel()
	}()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	// Drop a copy of the config as actually in use, defaults included.
	if err := cfg.Save(*configFile + "-in-use"); err != nil {
		log.WithError(err).Warn("Failed to write in-use config copy")
	}

	modules, sims, closers, err := buildModules(cfg, *dummyHW)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up hardware")
	}
	defer func() {
		for _, m := range modules {
			m.Stop()
		}
		for _, c := range closers {
			_ = c()
		}
	}()

	for i, m := range modules {
		if err := m.ConfigureMotors(cfg.Modules[i].AngleCurrentLimit, cfg.Modules[i].DriveCurrentLimit); err != nil {
			log.WithError(err).Fatal("Failed to configure motors")
		}
		m.Calibrate(angle.FromFloat(cfg.Modules[i].InitAngle))
	}
	log.WithField("modules", len(modules)).Info("Calibrated, starting control loop")

	runLoop(ctx, cfg, modules, sims)
}

func buildModules(cfg *config.Config, dummy bool) (
	modules []*swervemodule.Module,
	sims []*hardware.DummyEncoder,
	closers []func() error,
	err error,
) {
	for i := range cfg.Modules {
		mc := &cfg.Modules[i]

		var (
			enc hardware.AbsoluteEncoder
			am  hardware.AngleMotor
			dm  hardware.DriveMotor
		)
		if dummy {
			motor := hardware.NewDummyAngleMotor()
			motor.Quiet = true
			simEnc := hardware.NewDummyEncoder(motor)
			drive := hardware.NewDummyDriveMotor()
			drive.Quiet = true
			enc, am, dm = simEnc, motor, drive
			sims = append(sims, simEnc)
		} else {
			realEnc, encErr := thriftyenc.New(mc.EncoderDevice, mc.EncoderChannel)
			if encErr != nil {
				err = encErr
				return
			}
			closers = append(closers, realEnc.Close)
			angleMotor, amErr := sparkmax.New(mc.AngleMotorAddr)
			if amErr != nil {
				err = amErr
				return
			}
			closers = append(closers, angleMotor.Close)
			driveMotor, dmErr := sparkmax.New(mc.DriveMotorAddr)
			if dmErr != nil {
				err = dmErr
				return
			}
			closers = append(closers, driveMotor.Close)
			enc, am, dm = realEnc, angleMotor, driveMotor
		}

		modules = append(modules,
			swervemodule.New(mc.Number, mc.RegulatorConfig(), enc, am, dm))
	}
	return
}

func runLoop(
	ctx context.Context,
	cfg *config.Config,
	modules []*swervemodule.Module,
	sims []*hardware.DummyEncoder,
) {
	period := time.Duration(cfg.Loop.PeriodMillis) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	targets := cfg.Loop.Targets
	if len(targets) == 0 {
		targets = []float64{0}
	}
	cyclesPerTarget := int(cfg.Loop.HoldSeconds * 1000 / float64(cfg.Loop.PeriodMillis))
	if cyclesPerTarget < 1 {
		cyclesPerTarget = 1
	}

	cycle := 0
	for ctx.Err() == nil {
		<-ticker.C

		target := angle.FromFloat(targets[(cycle/cyclesPerTarget)%len(targets)])
		for _, sim := range sims {
			sim.Advance(period)
		}
		for _, m := range modules {
			st := m.Cycle(target, 0)
			fmt.Printf("SM%d: heading=%.1f target=%.1f error=%.1f V=%.2f onTarget=%v rev=%v\n",
				m.Number, st.Heading.Float(), target.Float(), st.Error, st.Voltage, st.OnTarget, st.Reversed)
		}
		cycle++
	}
}
