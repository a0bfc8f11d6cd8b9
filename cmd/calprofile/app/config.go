package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

const (
	DriverCAT = "cat"
	DriverSim = "sim"
)

// Config holds the command line options for the calibration profile tool.
type Config struct {
	Driver     string
	SerialPort string
	BaudRate   int
	OutputFile string
	MinPower   *float64
	MaxPower   *float64
	BarWidth   int
	Height     int
}

func NewConfig() *Config {
	return &Config{
		Driver:   DriverSim,
		BarWidth: 5,
		Height:   240,
	}
}

// NewConfigFromCLI builds the configuration from command line flags.
func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var minPower, maxPower float64
	flag.StringVar(&c.Driver, "driver", DriverSim, "Radio driver. [sim, cat]")
	flag.StringVar(&c.SerialPort, "port", "", "Serial port of the CAT receiver")
	flag.IntVar(&c.BaudRate, "baud", 0, "Serial baud rate (0 for default)")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.Float64Var(&minPower, "min-power", 0, "Define a manual minimum power (format nn.n)")
	flag.Float64Var(&maxPower, "max-power", 0, "Define a manual maximum power (format nn.n)")
	flag.IntVar(&c.BarWidth, "bar-width", 5, "Width of one channel bar in pixels")
	flag.IntVar(&c.Height, "height", 240, "Height of the profile plot in pixels")
	flag.Parse()

	c.Driver = strings.ToLower(c.Driver)

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-power" {
			c.MinPower = &minPower
		}
		if f.Name == "max-power" {
			c.MaxPower = &maxPower
		}
	})

	var err error
	if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if c.Driver != DriverSim && c.Driver != DriverCAT {
		err = fmt.Errorf("invalid driver: %s", c.Driver)
	} else if c.Driver == DriverCAT && c.SerialPort == "" {
		err = errors.New("serial port is required for the cat driver")
	} else if c.BarWidth <= 0 || c.Height <= 0 {
		err = errors.New("bar width and height must be positive")
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	if !strings.HasSuffix(c.OutputFile, ".png") {
		c.OutputFile += ".png"
	}
	return c, nil
}
