package config

import (
	"fmt"
	"io"
)

// Keys lists every config key in file order.
var Keys = []string{
	"color",
	"fill",
	"style",
	"thickness",
	"opacity",
	"click_through",
	"keep_above",
	"duration",
	"display",
	"title",
	"log_level",
}

// Explain returns the effective value of key and where it came from.
func Explain(res *LoadResult, key string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	value, err := lookupValue(res.Config, key)
	if err != nil {
		return nil, Source{}, err
	}
	return value, res.SourceOf(key), nil
}

// PrintEffective writes every key with its value and source, one per line.
func PrintEffective(w io.Writer, res *LoadResult) error {
	for _, key := range Keys {
		value, src, err := Explain(res, key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-14s %-12v # %s\n", key, formatValue(value), src); err != nil {
			return err
		}
	}
	return nil
}

func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	case SourceFlag:
		return "command line"
	default:
		return "default"
	}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func lookupValue(cfg *Config, key string) (any, error) {
	switch key {
	case "color":
		return cfg.Color, nil
	case "fill":
		return cfg.Fill, nil
	case "style":
		return string(cfg.Style), nil
	case "thickness":
		return cfg.Thickness, nil
	case "opacity":
		return cfg.Opacity, nil
	case "click_through":
		return cfg.ClickThrough, nil
	case "keep_above":
		return cfg.KeepAbove, nil
	case "duration":
		return cfg.Duration, nil
	case "display":
		return cfg.Display, nil
	case "title":
		return cfg.Title, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown config key %q", key)
	}
}
