package willowxr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlacementPolicy selects how a newly created panel is placed.
type PlacementPolicy uint8

const (
	// PlacementTrack keeps a new panel following the pointer until the
	// pointer is released, then commits its pose.
	PlacementTrack PlacementPolicy = iota
	// PlacementImmediate places a new panel in front of the camera and
	// returns to Idle at once.
	PlacementImmediate
)

// String returns the policy's config name.
func (p PlacementPolicy) String() string {
	switch p {
	case PlacementTrack:
		return "track"
	case PlacementImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p PlacementPolicy) MarshalText() ([]byte, error) {
	s := p.String()
	if s == "unknown" {
		return nil, fmt.Errorf("invalid placement policy %d", p)
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PlacementPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "track", "":
		*p = PlacementTrack
	case "immediate":
		*p = PlacementImmediate
	default:
		return fmt.Errorf("unknown placement policy %q", text)
	}
	return nil
}

// Config holds the gesture constants used by the interaction controller and
// the scene. Distances are in world units, angles in radians and durations
// in seconds.
type Config struct {
	// Smoothing is the per-frame lerp factor toward the gesture goal. 1 snaps.
	Smoothing float64 `json:"smoothing" yaml:"smoothing"`
	// MinDistance and MaxDistance bound a dragged panel's distance from the
	// camera.
	MinDistance float64 `json:"minDistance" yaml:"minDistance"`
	MaxDistance float64 `json:"maxDistance" yaml:"maxDistance"`
	// PitchLimit clamps panel pitch to [-PitchLimit, PitchLimit].
	PitchLimit float64 `json:"pitchLimit" yaml:"pitchLimit"`
	// RotateSensitivity scales controller yaw/pitch deltas.
	RotateSensitivity float64 `json:"rotateSensitivity" yaml:"rotateSensitivity"`
	// TouchRotateFactor scales 2D drag deltas (normalized device units) into
	// radians.
	TouchRotateFactor float64 `json:"touchRotateFactor" yaml:"touchRotateFactor"`
	// MinScale and MaxScale clamp resize on x and y.
	MinScale float64 `json:"minScale" yaml:"minScale"`
	MaxScale float64 `json:"maxScale" yaml:"maxScale"`

	Placement         PlacementPolicy `json:"placement" yaml:"placement"`
	PlacementDistance float64         `json:"placementDistance" yaml:"placementDistance"`

	// DoubleTapWindow is the longest gap between two touch/mouse presses on
	// the same panel that toggles fullscreen. Zero disables double tap.
	DoubleTapWindow float64 `json:"doubleTapWindow" yaml:"doubleTapWindow"`
	// TouchDefaultDrag makes a touch on a panel drag it when neither Move
	// nor Rotate is armed.
	TouchDefaultDrag bool `json:"touchDefaultDrag" yaml:"touchDefaultDrag"`

	FlashColor    Color   `json:"flashColor" yaml:"flashColor"`
	FlashDuration float64 `json:"flashDuration" yaml:"flashDuration"`

	NotificationDuration float64 `json:"notificationDuration" yaml:"notificationDuration"`
}

// DefaultConfig returns the standard gesture constants.
func DefaultConfig() Config {
	return Config{
		Smoothing:            0.5,
		MinDistance:          0.5,
		MaxDistance:          5,
		PitchLimit:           math.Pi / 2,
		RotateSensitivity:    1,
		TouchRotateFactor:    2,
		MinScale:             0.5,
		MaxScale:             2,
		Placement:            PlacementTrack,
		PlacementDistance:    1,
		DoubleTapWindow:      0.3,
		TouchDefaultDrag:     true,
		FlashColor:           RGB(0x4FC3F7),
		FlashDuration:        0.2,
		NotificationDuration: 2,
	}
}

// LoadConfig parses JSON over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigYAML is LoadConfig for YAML documents. Keys match the JSON
// names.
func LoadConfigYAML(yamlData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(yamlData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads path and parses it as YAML when the extension is
// .yaml or .yml, JSON otherwise.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadConfigYAML(data)
	}
	return LoadConfig(data)
}

// orDefault returns c if it validates and DefaultConfig otherwise.
func (c Config) orDefault() Config {
	if err := c.Validate(); err != nil {
		debugf("config: %v; using defaults", err)
		return DefaultConfig()
	}
	return c
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("smoothing %v not in (0, 1]", c.Smoothing))
	}
	if c.MinDistance < 0 || c.MaxDistance <= c.MinDistance {
		errs = append(errs, fmt.Errorf("distance range [%v, %v] is empty", c.MinDistance, c.MaxDistance))
	}
	if c.PitchLimit <= 0 || c.PitchLimit > math.Pi/2 {
		errs = append(errs, fmt.Errorf("pitchLimit %v not in (0, pi/2]", c.PitchLimit))
	}
	if c.MinScale <= 0 || c.MaxScale < c.MinScale {
		errs = append(errs, fmt.Errorf("scale range [%v, %v] is empty", c.MinScale, c.MaxScale))
	}
	if c.PlacementDistance < c.MinDistance || c.PlacementDistance > c.MaxDistance {
		errs = append(errs, fmt.Errorf("placementDistance %v outside [%v, %v]", c.PlacementDistance, c.MinDistance, c.MaxDistance))
	}
	if c.DoubleTapWindow < 0 {
		errs = append(errs, fmt.Errorf("doubleTapWindow %v is negative", c.DoubleTapWindow))
	}
	if c.FlashDuration < 0 || c.NotificationDuration < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}
