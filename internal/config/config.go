// Package config loads the TOML configuration shared by the commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"sweep3d/internal/character"
	"sweep3d/internal/physics"
)

type Config struct {
	Physics Physics `toml:"physics"`
	Agent   Agent   `toml:"agent"`
	Log     Log     `toml:"log"`
	Stress  Stress  `toml:"stress"`
}

type Physics struct {
	MaxIterations   int     `toml:"max-iterations"`
	MinDisplacement float32 `toml:"min-displacement"`
	NudgeDistance   float32 `toml:"nudge-distance"`
	MinFraction     float32 `toml:"min-fraction"`
}

type Agent struct {
	Radius        float32 `toml:"radius"`
	Gravity       float32 `toml:"gravity"`
	UseGravity    bool    `toml:"use-gravity"`
	SlopeLimit    float32 `toml:"slope-limit"`
	ProbeDistance float32 `toml:"probe-distance"`
	AimRange      float32 `toml:"aim-range"`
	Speed         float32 `toml:"speed"`
}

type Log struct {
	Debug bool `toml:"debug"`
}

type Stress struct {
	Agents  int `toml:"agents"`
	Steps   int `toml:"steps"`
	Workers int `toml:"workers"` // 0 uses GOMAXPROCS
}

// Default returns the built-in configuration.
func Default() Config {
	ps := physics.DefaultSettings()
	cs := character.DefaultSettings()
	return Config{
		Physics: Physics{
			MaxIterations:   ps.MaxIterations,
			MinDisplacement: ps.MinDisplacement,
			NudgeDistance:   ps.NudgeDistance,
			MinFraction:     ps.MinFraction,
		},
		Agent: Agent{
			Radius:        cs.Radius,
			Gravity:       cs.Gravity,
			UseGravity:    cs.UseGravity,
			SlopeLimit:    cs.SlopeLimit,
			ProbeDistance: cs.ProbeDistance,
			AimRange:      cs.AimRange,
			Speed:         6,
		},
		Stress: Stress{
			Agents: 64,
			Steps:  600,
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(string(data), &c); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is Load, but a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Decode parses TOML into c and validates the result.
func Decode(data string, c *Config) error {
	meta, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var unknown errUnknownConfig
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		return unknown
	}
	return c.Validate()
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var err error
	if c.Physics.MaxIterations < 1 {
		err = multierr.Append(err, fmt.Errorf("physics.max-iterations must be at least 1, got %d", c.Physics.MaxIterations))
	}
	if c.Physics.MinDisplacement < 0 {
		err = multierr.Append(err, fmt.Errorf("physics.min-displacement must not be negative, got %g", c.Physics.MinDisplacement))
	}
	if c.Physics.NudgeDistance < 0 {
		err = multierr.Append(err, fmt.Errorf("physics.nudge-distance must not be negative, got %g", c.Physics.NudgeDistance))
	}
	if c.Physics.MinFraction < 0 || c.Physics.MinFraction >= 1 {
		err = multierr.Append(err, fmt.Errorf("physics.min-fraction must be in [0, 1), got %g", c.Physics.MinFraction))
	}
	if c.Agent.Radius < 0 {
		err = multierr.Append(err, fmt.Errorf("agent.radius must not be negative, got %g", c.Agent.Radius))
	}
	if c.Agent.SlopeLimit < 0 || c.Agent.SlopeLimit > 90 {
		err = multierr.Append(err, fmt.Errorf("agent.slope-limit must be in [0, 90], got %g", c.Agent.SlopeLimit))
	}
	if c.Agent.ProbeDistance < 0 {
		err = multierr.Append(err, fmt.Errorf("agent.probe-distance must not be negative, got %g", c.Agent.ProbeDistance))
	}
	if c.Stress.Agents < 0 || c.Stress.Steps < 0 || c.Stress.Workers < 0 {
		err = multierr.Append(err, errors.New("stress settings must not be negative"))
	}
	return err
}

// PhysicsSettings converts the physics section.
func (c Config) PhysicsSettings() physics.Settings {
	return physics.Settings{
		MaxIterations:   c.Physics.MaxIterations,
		MinDisplacement: c.Physics.MinDisplacement,
		NudgeDistance:   c.Physics.NudgeDistance,
		MinFraction:     c.Physics.MinFraction,
	}
}

// CharacterSettings converts the agent section.
func (c Config) CharacterSettings() character.Settings {
	return character.Settings{
		Radius:        c.Agent.Radius,
		UseGravity:    c.Agent.UseGravity,
		Gravity:       c.Agent.Gravity,
		SlopeLimit:    c.Agent.SlopeLimit,
		ProbeDistance: c.Agent.ProbeDistance,
		AimRange:      c.Agent.AimRange,
	}
}

// errUnknownConfig lists keys the file set but Config does not know.
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}
