package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
	"github.com/team-vortex/swervebot/go-controller/pkg/regulator"
	"github.com/team-vortex/swervebot/go-controller/pkg/swervemodule"
	"github.com/team-vortex/swervebot/go-controller/pkg/tunable"
)

// Exercises one simulated swerve module so the steering PID can be tuned
// without a robot.

func main() {
	fmt.Println("---- Steer tests ----")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	motor := hardware.NewDummyAngleMotor()
	motor.Quiet = true
	drive := hardware.NewDummyDriveMotor()
	drive.Quiet = true
	enc := hardware.NewDummyEncoder(motor)

	module := swervemodule.New(0, regulator.Config{
		KP:        0.01,
		Tolerance: 2,
		MinOutput: 0.5,
		MaxOutput: 5,
	}, enc, motor, drive)
	module.Calibrate(angle.FromFloat(0))

	var tunables tunable.Tunables
	kp := tunables.Create("kp", 0.01, 0.001)
	ki := tunables.Create("ki", 0, 0.0005)
	kd := tunables.Create("kd", 0, 0.001)
	minV := tunables.Create("minV", 0.5, 0.05)
	maxV := tunables.Create("maxV", 5, 0.25)

	fmt.Println(
		`Commands:
    h <angle>   set target heading
    s <speed>   set wheel speed
    n / p       select next/previous tunable
    + / -       step the selected tunable
    r           reset the regulator state
    q           quit`)

	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(os.Stdin)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("\nFailed to read stdin: ", err)
				return
			}
			lines <- strings.TrimSpace(line)
		}
	}()

	const period = 20 * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	target := angle.FromFloat(0)
	speed := 0.0
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			parts := strings.Split(line, " ")
			switch parts[0] {
			case "h":
				if len(parts) < 2 {
					fmt.Println("Not enough parameters")
					continue
				}
				a, err := strconv.ParseFloat(parts[1], 64)
				if err != nil {
					fmt.Printf("Failed to parse float: %v\n", err)
					continue
				}
				target = angle.FromFloat(a)
				fmt.Printf("Setting target heading: %.1f\n", target.Float())
			case "s":
				if len(parts) < 2 {
					fmt.Println("Not enough parameters")
					continue
				}
				s, err := strconv.ParseFloat(parts[1], 64)
				if err != nil {
					fmt.Printf("Failed to parse float: %v\n", err)
					continue
				}
				speed = s
			case "n":
				tunables.SelectNext()
			case "p":
				tunables.SelectPrev()
			case "+":
				tunables.Current().Up()
			case "-":
				tunables.Current().Down()
			case "r":
				module.Regulator().Reset()
				fmt.Println("Regulator reset")
			case "q":
				return
			}
		case <-ticker.C:
			cfg := module.Regulator().Config()
			cfg.KP = kp.Get()
			cfg.KI = ki.Get()
			cfg.KD = kd.Get()
			cfg.MinOutput = minV.Get()
			cfg.MaxOutput = maxV.Get()
			module.Regulator().SetConfig(cfg)

			enc.Advance(period)
			st := module.Cycle(target, speed)
			fmt.Printf("SM0: heading=%.1f target=%.1f error=%.1f V=%.2f onTarget=%v rev=%v drive=%.2f\n",
				st.Heading.Float(), target.Float(), st.Error, st.Voltage, st.OnTarget, st.Reversed, drive.Speed())
		}
	}
}
