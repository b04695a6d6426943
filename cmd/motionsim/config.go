package main

// Config is the seed configuration loaded (via koanf) into a fresh
// Controller's per-axis travel, velocity, and acceleration limits before the
// demo command script runs.
type Config struct {
	NumAxes      int             `koanf:"numaxes"`
	LimitVel     float64         `koanf:"limitvel"`
	Acceleration float64         `koanf:"acceleration"`
	Axes         [8]AxisSeed     `koanf:"axes"`
}

// AxisSeed is one axis's slice of the seed configuration.
type AxisSeed struct {
	MinLimit    float64 `koanf:"minlimit"`
	MaxLimit    float64 `koanf:"maxlimit"`
	MaxVelocity float64 `koanf:"maxvelocity"`
	HomingVel   float64 `koanf:"homingvel"`
}

// DefaultConfig returns the seed values used when no configuration file is
// present: eight active axes, travel [-10, 10], a generous velocity ceiling.
func DefaultConfig() Config {
	c := Config{
		NumAxes:      8,
		LimitVel:     50,
		Acceleration: 10,
	}
	for i := range c.Axes {
		c.Axes[i] = AxisSeed{MinLimit: -10, MaxLimit: 10, MaxVelocity: 20, HomingVel: 2}
	}
	return c
}
