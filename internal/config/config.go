package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// View holds the viewer capabilities and input sensitivities.
type View struct {
	CenterOnResize    bool
	Rotation          bool
	DVDLogo           bool
	LineZoomStep      float32
	PixelZoomRate     float32
	SpotlightDarkness float32
	SpotlightRadius   float32
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	View    View
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	d := interaction.DefaultConfig()
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		View: View{
			Rotation:          true,
			LineZoomStep:      d.LineZoomStep,
			PixelZoomRate:     d.PixelZoomRate,
			SpotlightDarkness: d.SpotlightDarkness,
			SpotlightRadius:   d.SpotlightRadius,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Interaction converts the view section to the state machine configuration.
func (c *Config) Interaction() interaction.Config {
	ic := interaction.DefaultConfig()
	ic.RotationSupported = c.View.Rotation
	ic.OverlaySupported = c.View.DVDLogo
	ic.CenteringOnResize = c.View.CenterOnResize
	ic.LineZoomStep = c.View.LineZoomStep
	ic.PixelZoomRate = c.View.PixelZoomRate
	ic.SpotlightDarkness = c.View.SpotlightDarkness
	ic.SpotlightRadius = c.View.SpotlightRadius
	return ic
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "center_on_resize = %v\n", c.View.CenterOnResize)
	fmt.Fprintf(&sb, "rotation = %v\n", c.View.Rotation)
	fmt.Fprintf(&sb, "dvd_logo = %v\n", c.View.DVDLogo)
	fmt.Fprintf(&sb, "line_zoom_step = %s\n", formatFloat(c.View.LineZoomStep))
	fmt.Fprintf(&sb, "pixel_zoom_rate = %s\n", formatFloat(c.View.PixelZoomRate))
	fmt.Fprintf(&sb, "spotlight_darkness = %s\n", formatFloat(c.View.SpotlightDarkness))
	fmt.Fprintf(&sb, "spotlight_radius = %s\n", formatFloat(c.View.SpotlightRadius))
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(t.Background))
		fmt.Fprintf(&sb, "Spotlight: %s\n", toHex(t.Spotlight))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
