// Package config loads the drivetrain configuration from yaml.
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/team-vortex/swervebot/go-controller/pkg/regulator"
)

// ModuleConfig describes one steerable module.
type ModuleConfig struct {
	Number int `yaml:"number"`

	// Absolute encoder: SPI device plus MCP3008 channel.
	EncoderDevice  string `yaml:"encoder_device"`
	EncoderChannel int    `yaml:"encoder_channel"`

	// Motor controller bus addresses.
	AngleMotorAddr int `yaml:"angle_motor_addr"`
	DriveMotorAddr int `yaml:"drive_motor_addr"`

	// Physical heading of the wheel, in degrees, when the robot boots in
	// its alignment jig.
	InitAngle float64 `yaml:"init_angle"`

	KP        float64 `yaml:"kp"`
	KI        float64 `yaml:"ki"`
	KD        float64 `yaml:"kd"`
	Tolerance float64 `yaml:"tolerance"`

	MinVoltage float64 `yaml:"min_voltage"`
	MaxVoltage float64 `yaml:"max_voltage"`

	SignedIntegral bool `yaml:"signed_integral"`

	AngleCurrentLimit int `yaml:"angle_current_limit"`
	DriveCurrentLimit int `yaml:"drive_current_limit"`
}

// RegulatorConfig converts the tuning fields into a regulator config.
func (m *ModuleConfig) RegulatorConfig() regulator.Config {
	return regulator.Config{
		KP:             m.KP,
		KI:             m.KI,
		KD:             m.KD,
		Tolerance:      m.Tolerance,
		MaxOutput:      m.MaxVoltage,
		MinOutput:      m.MinVoltage,
		SignedIntegral: m.SignedIntegral,
	}
}

// LoopConfig drives the demo target schedule in the main controller.
type LoopConfig struct {
	PeriodMillis int `yaml:"period_millis"`

	// Headings, in degrees, that the controller steps through, holding
	// each for HoldSeconds.
	Targets     []float64 `yaml:"targets"`
	HoldSeconds float64   `yaml:"hold_seconds"`
}

type Config struct {
	Modules []ModuleConfig `yaml:"modules"`
	Loop    LoopConfig     `yaml:"loop"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating config %s", path)
	}
	return &cfg, nil
}

// Save writes the config back out, e.g. the in-use copy the controller drops
// at startup.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshalling config")
	}
	if err := ioutil.WriteFile(path, raw, 0666); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}

func (c *Config) ApplyDefaults() {
	if c.Loop.PeriodMillis == 0 {
		c.Loop.PeriodMillis = 20
	}
	if c.Loop.HoldSeconds == 0 {
		c.Loop.HoldSeconds = 3
	}
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.EncoderDevice == "" {
			m.EncoderDevice = "/dev/spidev0.0"
		}
		if m.KP == 0 {
			m.KP = 0.01
		}
		if m.Tolerance == 0 {
			m.Tolerance = 2
		}
		if m.MinVoltage == 0 {
			m.MinVoltage = 0.5
		}
		if m.MaxVoltage == 0 {
			m.MaxVoltage = 5
		}
		if m.AngleCurrentLimit == 0 {
			m.AngleCurrentLimit = 20
		}
		if m.DriveCurrentLimit == 0 {
			m.DriveCurrentLimit = 40
		}
	}
}

func (c *Config) Validate() error {
	if len(c.Modules) == 0 {
		return errors.New("no modules configured")
	}
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.EncoderChannel < 0 || m.EncoderChannel > 7 {
			return errors.Errorf("module %d: encoder channel %d out of range", m.Number, m.EncoderChannel)
		}
		if m.Tolerance < 0 {
			return errors.Errorf("module %d: negative tolerance", m.Number)
		}
		if m.MinVoltage < 0 {
			return errors.Errorf("module %d: negative min voltage", m.Number)
		}
		if m.MaxVoltage < m.MinVoltage {
			return errors.Errorf("module %d: max voltage %.2f below min voltage %.2f",
				m.Number, m.MaxVoltage, m.MinVoltage)
		}
		if m.InitAngle < 0 || m.InitAngle >= 360 {
			return errors.Errorf("module %d: init angle %.1f outside [0,360)", m.Number, m.InitAngle)
		}
	}
	return nil
}
