package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

const sampleTheme = `
name: midnight
description: dark with cyan accents
colors:
  background: "#101020"
  text: white
  accent: darkcyan
  error: "not-a-color"
`

func writeTheme(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return dir
}

func TestLoadTheme(t *testing.T) {
	dir := writeTheme(t, "midnight", sampleTheme)

	theme, err := LoadTheme(filepath.Join(dir, "midnight.yaml"))
	require.NoError(t, err)
	require.Equal(t, "midnight", theme.Name)
	require.Equal(t, tcell.GetColor("#101020"), theme.Color(ColorBackground))
	require.Equal(t, tcell.ColorWhite, theme.Color(ColorText))

	// Unparseable entries keep the default.
	require.Equal(t, tcell.ColorRed, theme.Color(ColorError))
	// Entries absent from the file keep the default too.
	require.Equal(t, tcell.ColorGray, theme.Color(ColorMuted))
}

func TestLoadThemeBadFile(t *testing.T) {
	dir := writeTheme(t, "broken", "colors: [not, a, map]")
	_, err := LoadTheme(filepath.Join(dir, "broken.yaml"))
	require.Error(t, err)
}

func TestLoadThemeFromDirFallsBack(t *testing.T) {
	theme, err := LoadThemeFromDir(t.TempDir(), "missing")
	require.NoError(t, err)
	require.Equal(t, "default", theme.Name)
	require.Equal(t, tcell.ColorWhite, theme.Color(ColorText))
}

func TestUnknownColorNameFallsBackToWhite(t *testing.T) {
	theme := DefaultTheme()
	require.Equal(t, tcell.ColorWhite, theme.Color("no-such-slot"))
}
