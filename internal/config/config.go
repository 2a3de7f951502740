// Package config resolves the photoframe settings from viper into a typed,
// validated struct.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matjam/photoframe/internal/types"
	"github.com/spf13/viper"
)

type Overlay struct {
	Format   string  `mapstructure:"format" json:"format"`
	FontSize float64 `mapstructure:"font_size" json:"font_size"`
	Color    string  `mapstructure:"color" json:"color"`
	Shadow   bool    `mapstructure:"shadow" json:"shadow"`
}

type Config struct {
	// UpdateInterval is the redraw cadence in milliseconds.
	UpdateInterval int    `mapstructure:"update_interval" json:"update_interval"`
	Width          int    `mapstructure:"width" json:"width"`
	Height         int    `mapstructure:"height" json:"height"`
	Fullscreen     bool   `mapstructure:"fullscreen" json:"fullscreen"`
	Title          string `mapstructure:"title" json:"title"`

	PictureWidth  int    `mapstructure:"picture_width" json:"picture_width"`
	PictureHeight int    `mapstructure:"picture_height" json:"picture_height"`
	PicturePath   string `mapstructure:"picture_path" json:"picture_path"`
	// PictureInterval is the rotation cadence in seconds.
	PictureInterval int    `mapstructure:"picture_interval" json:"picture_interval"`
	FitMode         string `mapstructure:"fit_mode" json:"fit_mode"`
	ScaleMode       string `mapstructure:"scale_mode" json:"scale_mode"`

	Debug   bool    `mapstructure:"debug" json:"debug"`
	Overlay Overlay `mapstructure:"overlay" json:"overlay"`
}

// SetDefaults registers the default for every key with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("update_interval", 1000)
	v.SetDefault("width", 800)
	v.SetDefault("height", 480)
	v.SetDefault("fullscreen", false)
	v.SetDefault("title", "photoframe")
	v.SetDefault("picture_width", 800)
	v.SetDefault("picture_height", 480)
	v.SetDefault("picture_path", "pictures")
	v.SetDefault("picture_interval", 3600)
	v.SetDefault("fit_mode", string(types.ScalingModeFill))
	v.SetDefault("scale_mode", string(types.ScalingModeStretch))
	v.SetDefault("debug", false)
	v.SetDefault("overlay.format", "15:04")
	v.SetDefault("overlay.font_size", 0)
	v.SetDefault("overlay.color", "#ffffff")
	v.SetDefault("overlay.shadow", true)
}

func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, n int) {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, n))
		}
	}

	positive("update_interval", c.UpdateInterval)
	positive("width", c.Width)
	positive("height", c.Height)
	positive("picture_width", c.PictureWidth)
	positive("picture_height", c.PictureHeight)
	positive("picture_interval", c.PictureInterval)

	if c.PicturePath == "" {
		errs = append(errs, errors.New("picture_path must be set"))
	}
	if _, err := types.ParseScalingMode(c.FitMode); err != nil {
		errs = append(errs, fmt.Errorf("fit_mode: %w", err))
	}
	if _, err := types.ParseScalingMode(c.ScaleMode); err != nil {
		errs = append(errs, fmt.Errorf("scale_mode: %w", err))
	}
	if c.Overlay.Format == "" {
		errs = append(errs, errors.New("overlay.format must be set"))
	}
	if c.Overlay.FontSize < 0 {
		errs = append(errs, fmt.Errorf("overlay.font_size must not be negative, got %v", c.Overlay.FontSize))
	}
	if _, err := c.OverlayColor(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) RedrawInterval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Millisecond
}

func (c *Config) RotationInterval() time.Duration {
	return time.Duration(c.PictureInterval) * time.Second
}

func (c *Config) Fit() types.ScalingMode {
	return types.ScalingMode(c.FitMode)
}

func (c *Config) Scale() types.ScalingMode {
	return types.ScalingMode(c.ScaleMode)
}

// OverlayColor parses the overlay colour, a #rrggbb or #rgb hex string.
func (c *Config) OverlayColor() (color.Color, error) {
	col, err := colorful.Hex(c.Overlay.Color)
	if err != nil {
		return nil, fmt.Errorf("overlay.color: %w", err)
	}
	return col, nil
}
