package config

// RawConfig mirrors the YAML file. Pointer fields distinguish "unset" from
// zero values so defaults survive partial files.
type RawConfig struct {
	Color        *string  `yaml:"color"`
	Fill         *string  `yaml:"fill"`
	Style        *Style   `yaml:"style"`
	Thickness    *int     `yaml:"thickness"`
	Opacity      *float64 `yaml:"opacity"`
	ClickThrough *bool    `yaml:"click_through"`
	KeepAbove    *bool    `yaml:"keep_above"`
	Duration     *int     `yaml:"duration"`
	Display      *string  `yaml:"display"`
	Title        *string  `yaml:"title"`
	LogLevel     *string  `yaml:"log_level"`
}
