package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"roveri/internal/utils"
)

// ThemeConfig is a theme as loaded from YAML.
type ThemeConfig struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Colors      map[string]string `yaml:"colors"`
}

// Theme is a processed theme with tcell colors.
type Theme struct {
	Name        string
	Description string
	colors      map[string]tcell.Color
}

// Color names every screen can ask for.
const (
	ColorBackground = "background"
	ColorText       = "text"
	ColorAccent     = "accent"
	ColorError      = "error"
	ColorMuted      = "muted"
)

var defaultColors = map[string]tcell.Color{
	ColorBackground: tcell.ColorBlack,
	ColorText:       tcell.ColorWhite,
	ColorAccent:     tcell.ColorDarkCyan,
	ColorError:      tcell.ColorRed,
	ColorMuted:      tcell.ColorGray,
}

// DefaultTheme is used when no theme file exists yet.
func DefaultTheme() *Theme {
	return &Theme{Name: "default", colors: defaultColors}
}

// LoadTheme loads a theme from a YAML file.
func LoadTheme(themePath string) (*Theme, error) {
	data, err := os.ReadFile(themePath)
	if err != nil {
		return nil, utils.ThemeError(fmt.Sprintf("failed to read theme file: %v", err))
	}
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, utils.ThemeError(fmt.Sprintf("failed to parse theme file: %v", err))
	}
	theme := &Theme{
		Name:        cfg.Name,
		Description: cfg.Description,
		colors:      map[string]tcell.Color{},
	}
	for key, fallback := range defaultColors {
		theme.colors[key] = fallback
		if raw, ok := cfg.Colors[key]; ok {
			theme.colors[key] = parseColor(raw, fallback)
		}
	}
	return theme, nil
}

// LoadThemeFromDir loads "<name>.yaml" from dir, falling back to the
// built-in default when the file is missing.
func LoadThemeFromDir(dir, name string) (*Theme, error) {
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err != nil {
		return DefaultTheme(), nil
	}
	return LoadTheme(path)
}

func (t *Theme) Color(name string) tcell.Color {
	if c, ok := t.colors[name]; ok {
		return c
	}
	return tcell.ColorWhite
}

func parseColor(raw string, fallback tcell.Color) tcell.Color {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if strings.HasPrefix(raw, "#") {
		return tcell.GetColor(raw)
	}
	if c, ok := tcell.ColorNames[strings.ToLower(raw)]; ok {
		return c
	}
	return fallback
}
