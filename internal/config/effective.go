package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig layers raw file values over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.Fill != nil {
		cfg.Fill = *raw.Fill
	}
	if raw.Style != nil {
		cfg.Style = *raw.Style
	}
	if raw.Thickness != nil {
		cfg.Thickness = *raw.Thickness
	}
	if raw.Opacity != nil {
		cfg.Opacity = *raw.Opacity
	}
	if raw.ClickThrough != nil {
		cfg.ClickThrough = *raw.ClickThrough
	}
	if raw.KeepAbove != nil {
		cfg.KeepAbove = *raw.KeepAbove
	}
	if raw.Duration != nil {
		cfg.Duration = *raw.Duration
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Title != nil {
		cfg.Title = *raw.Title
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}
