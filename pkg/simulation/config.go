package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/felipebalbi/boid/pkg/behavior"
	"github.com/felipebalbi/boid/pkg/framebuffer"
)

//go:embed config.schema.json
var configSchema string

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Color is the serialized form of a framebuffer pixel.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Pixel converts the color to a framebuffer pixel.
func (c Color) Pixel() framebuffer.Pixel {
	return framebuffer.Pixel{R: c.R, G: c.G, B: c.B}
}

type Config struct {
	// World Dimensions, also the framebuffer size
	WorldWidth  int `json:"worldWidth" yaml:"worldWidth"`
	WorldHeight int `json:"worldHeight" yaml:"worldHeight"`

	// Population is fixed for the whole run
	Population int `json:"population" yaml:"population"`

	// Pacing between two frames
	FrameIntervalMicros int64 `json:"frameIntervalMicros" yaml:"frameIntervalMicros"`

	// Seed for the initial scatter, 0 = time based
	Seed uint64 `json:"seed" yaml:"seed"`

	// Rendering
	BackgroundColor Color `json:"backgroundColor" yaml:"backgroundColor"`
	BoidColor       Color `json:"boidColor" yaml:"boidColor"`
	BoidSize        int   `json:"boidSize" yaml:"boidSize"`

	// Steering constants
	Steering behavior.Settings `json:"steering" yaml:"steering"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:          800,
		WorldHeight:         600,
		Population:          200,
		FrameIntervalMicros: 16_667,
		BackgroundColor:     Color{},
		BoidColor:           Color{R: 255, G: 255, B: 255},
		BoidSize:            1,
		Steering:            behavior.DefaultSettings(),
	}
}

// FrameInterval returns the pacing delay between two frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMicros) * time.Microsecond
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.Population <= 0:
		return fmt.Errorf("%w: population %d", ErrInvalidConfig, c.Population)
	case c.FrameIntervalMicros < 0:
		return fmt.Errorf("%w: frame interval %d", ErrInvalidConfig, c.FrameIntervalMicros)
	case c.BoidSize < 1:
		return fmt.Errorf("%w: boid size %d", ErrInvalidConfig, c.BoidSize)
	case c.Steering.MaxVelocity <= 0 || c.Steering.MaxForce <= 0:
		return fmt.Errorf("%w: max velocity %v, max force %v", ErrInvalidConfig, c.Steering.MaxVelocity, c.Steering.MaxForce)
	}
	return nil
}

// LoadConfig loads a JSON or YAML configuration file, validates it against
// the embedded schema and applies it over DefaultConfig. Fields missing
// from the file keep their default value.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Normalize to JSON so both formats go through the same validation
	b, err := toJSON(configFile, raw)
	if err != nil {
		return nil, err
	}

	// 4. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 5. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func toJSON(name string, raw []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config yaml: %w", err)
		}
		return b, nil
	case ".json", "":
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(name))
	}
}
