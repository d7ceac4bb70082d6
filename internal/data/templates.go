package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every template validation failure.
var ErrInvalid = errors.New("invalid templates")

// AsteroidTemplate defines the body, sprite and motion ranges of an asteroid.
// Speeds are field units per second, spin is radians per second.
type AsteroidTemplate struct {
	Radius       float64 `yaml:"radius"`
	SpriteWidth  float64 `yaml:"sprite_width"`
	SpriteHeight float64 `yaml:"sprite_height"`
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	Spin         float64 `yaml:"spin"`
}

// ExplosionTemplate defines the sprite sheet of an explosion: MaxFrame is the
// last column index, Rows the number of alternative animations.
type ExplosionTemplate struct {
	SpriteWidth  float64 `yaml:"sprite_width"`
	SpriteHeight float64 `yaml:"sprite_height"`
	MaxFrame     int     `yaml:"max_frame"`
	FPS          int     `yaml:"fps"`
	Rows         int     `yaml:"rows"`
}

// FrameInterval is the time one animation frame stays on screen.
func (t ExplosionTemplate) FrameInterval() time.Duration {
	if t.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(t.FPS)
}

type ProjectileTemplate struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

type ShipTemplate struct {
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	Speed        float64       `yaml:"speed"`
	FireCooldown time.Duration `yaml:"fire_cooldown"`
}

// Templates bundles every entity template the game needs.
type Templates struct {
	Asteroid   AsteroidTemplate   `yaml:"asteroid"`
	Explosion  ExplosionTemplate  `yaml:"explosion"`
	Projectile ProjectileTemplate `yaml:"projectile"`
	Ship       ShipTemplate       `yaml:"ship"`
}

// DefaultTemplates returns the built-in templates. Speeds are per second.
func DefaultTemplates() *Templates {
	return &Templates{
		Asteroid: AsteroidTemplate{
			Radius:       75,
			SpriteWidth:  150,
			SpriteHeight: 155,
			SpeedMin:     120,
			SpeedMax:     420,
			Spin:         0.6,
		},
		Explosion: ExplosionTemplate{
			SpriteWidth:  300,
			SpriteHeight: 300,
			MaxFrame:     22,
			FPS:          25,
			Rows:         3,
		},
		Projectile: ProjectileTemplate{
			Width:  3,
			Height: 40,
			Speed:  1200,
		},
		Ship: ShipTemplate{
			Width:        100,
			Height:       100,
			Speed:        300,
			FireCooldown: 150 * time.Millisecond,
		},
	}
}

// LoadTemplates loads templates.yaml over the defaults. An empty path returns
// the defaults.
func LoadTemplates(path string) (*Templates, error) {
	t := DefaultTemplates()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("templates %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects templates the entities cannot run with.
func (t *Templates) Validate() error {
	switch {
	case t.Asteroid.Radius <= 0:
		return fmt.Errorf("%w: asteroid.radius must be positive", ErrInvalid)
	case t.Asteroid.SpeedMax < t.Asteroid.SpeedMin:
		return fmt.Errorf("%w: asteroid.speed_max below speed_min", ErrInvalid)
	case t.Explosion.FPS <= 0:
		return fmt.Errorf("%w: explosion.fps must be positive", ErrInvalid)
	case t.Explosion.Rows <= 0:
		return fmt.Errorf("%w: explosion.rows must be positive", ErrInvalid)
	case t.Explosion.MaxFrame < 0:
		return fmt.Errorf("%w: explosion.max_frame must not be negative", ErrInvalid)
	case t.Projectile.Width <= 0 || t.Projectile.Height <= 0:
		return fmt.Errorf("%w: projectile size must be positive", ErrInvalid)
	case t.Ship.Width <= 0 || t.Ship.Height <= 0:
		return fmt.Errorf("%w: ship size must be positive", ErrInvalid)
	}
	return nil
}
