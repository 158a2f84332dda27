package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Style selects how the overlay is drawn.
type Style string

const (
	StyleOutline Style = "outline" // Four bar windows; the interior stays untouched.
	StyleFilled  Style = "filled"  // One window with a translucent fill and painted outline.
)

// Config holds the effective overlay appearance and runtime settings.
type Config struct {
	Color        string  `yaml:"color"`
	Fill         string  `yaml:"fill"`
	Style        Style   `yaml:"style"`
	Thickness    int     `yaml:"thickness"`
	Opacity      float64 `yaml:"opacity"`
	ClickThrough bool    `yaml:"click_through"`
	KeepAbove    bool    `yaml:"keep_above"`
	Duration     int     `yaml:"duration"` // Seconds; 0 = until closed.
	Display      string  `yaml:"display"`
	Title        string  `yaml:"title"`
	LogLevel     string  `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings: a 5px red outline at 30% opacity.
func DefaultConfig() *Config {
	return &Config{
		Color:        "red",
		Fill:         "white",
		Style:        StyleOutline,
		Thickness:    5,
		Opacity:      0.3,
		ClickThrough: true,
		KeepAbove:    true,
		Duration:     0,
		Display:      "",
		Title:        "regionmark",
		LogLevel:     "info",
	}
}

// Validate checks the config for values the overlay cannot draw with.
func (c *Config) Validate() error {
	if _, err := ParseColor(c.Color); err != nil {
		return &ValidationError{Path: "color", Err: err}
	}
	if _, err := ParseColor(c.Fill); err != nil {
		return &ValidationError{Path: "fill", Err: err}
	}
	switch c.Style {
	case StyleOutline, StyleFilled:
	default:
		return &ValidationError{Path: "style", Err: fmt.Errorf("style must be one of: outline, filled")}
	}
	if c.Thickness < 1 {
		return &ValidationError{Path: "thickness", Err: fmt.Errorf("thickness must be >= 1")}
	}
	if c.Opacity <= 0 || c.Opacity > 1 {
		return &ValidationError{Path: "opacity", Err: fmt.Errorf("opacity must be > 0 and <= 1")}
	}
	if c.Duration < 0 {
		return &ValidationError{Path: "duration", Err: fmt.Errorf("duration must be >= 0")}
	}
	if c.Title == "" {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title must not be empty")}
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// SlogLevel maps log_level to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// OutlinePixel returns the outline color as a 0xRRGGBB pixel value.
func (c *Config) OutlinePixel() uint32 {
	px, err := ParseColor(c.Color)
	if err != nil {
		return colorNames["red"]
	}
	return px
}

// FillPixel returns the fill color as a 0xRRGGBB pixel value.
func (c *Config) FillPixel() uint32 {
	px, err := ParseColor(c.Fill)
	if err != nil {
		return colorNames["white"]
	}
	return px
}

// Timeout returns the auto-close duration, or 0 when the overlay runs until closed.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Duration) * time.Second
}
