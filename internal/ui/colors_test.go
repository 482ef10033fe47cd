package ui

import (
	"testing"

	"github.com/fatih/color"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/icons"
	"github.com/stretchr/testify/assert"
)

func TestIconLabel(t *testing.T) {
	fileEntry := core.Entry{Icon: core.IconRef{Kind: core.IconFile, Path: "/cache/icons/ab.png"}}
	assert.Equal(t, "/cache/icons/ab.png", IconLabel(fileEntry))

	placeEntry := core.Entry{Icon: core.IconRef{
		Kind:        core.IconPlaceholder,
		Placeholder: icons.PlaceholderFor("Gimp"),
	}}
	assert.Equal(t, "[G]", IconLabel(placeEntry))
}

func TestOriginLabelWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	assert.Equal(t, "menu", OriginLabel(core.OriginStartMenu))
	assert.Equal(t, "programs", OriginLabel(core.OriginProgramFiles))
	assert.Equal(t, "extra", OriginLabel(core.OriginExtraPath))
}

func TestInitColorsExplicitModes(t *testing.T) {
	prev := color.NoColor
	defer func() { color.NoColor = prev }()

	InitColors("never")
	assert.True(t, color.NoColor)
	InitColors("always")
	assert.False(t, color.NoColor)
}
