// Package sim implements a simulated receiver: a flat noise floor with
// gaussian jitter, plus optional carriers that can be duty-cycled to mimic a
// bursty time-division signal. It backs demos and lets the detector run
// without hardware.
package sim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultFloorDBm  = -92.0
	defaultJitterDB  = 1.5
	carrierHalfWidth = 12_500 // Hz either side of the carrier center
)

// Carrier is a synthetic signal present on the simulated band. With a
// positive Period and a Duty in (0, 1) the carrier pulses on and off;
// otherwise it is continuous.
type Carrier struct {
	Frequency uint32   `yaml:"frequency"` // Hz
	Power     float64  `yaml:"power"`     // dBm while on
	Period    Duration `yaml:"period"`
	Duty      float64  `yaml:"duty"` // on fraction of the period
}

// Config describes the simulated band.
type Config struct {
	Floor    float64   `yaml:"floor"`  // dBm, defaults to -92
	Jitter   float64   `yaml:"jitter"` // dB standard deviation, defaults to 1.5
	Seed     int64     `yaml:"seed"`   // 0 seeds from the clock
	Carriers []Carrier `yaml:"carriers"`
}

// WithTimeSource overrides the time source used for carrier duty cycling.
func WithTimeSource(now func() time.Time) func(*Device) {
	return func(d *Device) {
		d.now = now
	}
}

// Device is a simulated receiver.
type Device struct {
	floor    float64
	jitter   float64
	carriers []Carrier

	now   func() time.Time
	epoch time.Time

	mu    sync.Mutex
	rng   *rand.Rand
	tuned uint32
}

// New creates a simulated receiver. A zero seed derives one from the clock;
// any other seed makes the noise fully reproducible.
func New(config *Config, options ...func(*Device)) *Device {
	floor := config.Floor
	if floor == 0 {
		floor = defaultFloorDBm
	}
	jitter := config.Jitter
	if jitter == 0 {
		jitter = defaultJitterDB
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := Device{
		floor:    floor,
		jitter:   jitter,
		carriers: config.Carriers,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(seed)),
	}

	for _, option := range options {
		option(&d)
	}

	d.epoch = d.now()
	return &d
}

// BeginSession implements the radio session contract. The simulated
// receiver has no hardware to bring up.
func (d *Device) BeginSession() error { return nil }

// EndSession implements the radio session contract.
func (d *Device) EndSession() error { return nil }

// Tune selects the sampled frequency.
func (d *Device) Tune(frequency uint32) error {
	d.mu.Lock()
	d.tuned = frequency
	d.mu.Unlock()
	return nil
}

// SampleStrength reads the simulated signal strength at the tuned frequency.
func (d *Device) SampleStrength() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	strength := d.floor + d.rng.NormFloat64()*d.jitter
	for _, carrier := range d.carriers {
		if !within(d.tuned, carrier.Frequency, carrierHalfWidth) {
			continue
		}
		if carrier.on(d.now().Sub(d.epoch)) && carrier.Power > strength {
			strength = carrier.Power
		}
	}
	return strength, nil
}

func (c Carrier) on(elapsed time.Duration) bool {
	period := time.Duration(c.Period)
	if period <= 0 || c.Duty <= 0 || c.Duty >= 1 {
		return true
	}
	phase := elapsed % period
	return phase < time.Duration(c.Duty*float64(period))
}

func within(frequency, center uint32, halfWidth uint32) bool {
	if frequency > center {
		return frequency-center <= halfWidth
	}
	return center-frequency <= halfWidth
}

// Duration wraps time.Duration with YAML support for values like "750ms".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	duration, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("sim.Duration: failed to parse: %s", err)
	}

	*d = Duration(duration)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
