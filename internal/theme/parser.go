package theme

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/wroomer/internal/logging"
)

// ErrUnknownKey is returned by Set for keys a Theme does not have.
var ErrUnknownKey = errors.New("unknown theme key")

// Set assigns one theme entry. Keys are Name, Background and Spotlight,
// matched without regard to case. The spotlight alpha is forced opaque
// because the darkness setting alone controls how strongly it is blended.
func (t *Theme) Set(key, value string) error {
	var dst *color.RGBA
	switch strings.ToLower(key) {
	case "name":
		t.Name = value
		return nil
	case "background":
		dst = &t.Background
	case "spotlight":
		dst = &t.Spotlight
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if dst == &t.Spotlight {
		c.A = 0xff
	}
	*dst = c
	return nil
}

// Parse reads a theme from r, starting from Default. Each line holds one
// "Key: value" pair; blank lines and lines starting with # or // are
// skipped. Unknown keys and lines without a colon are logged and skipped so
// older binaries accept newer themes.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	log := logging.Logger()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			log.Warn("theme: line without key", "line", lineNo)
			continue
		}
		key = strings.TrimSpace(key)
		err := t.Set(key, strings.TrimSpace(value))
		switch {
		case errors.Is(err, ErrUnknownKey):
			log.Warn("theme: unknown key", "key", key, "line", lineNo)
		case err != nil:
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseColor reads #RGB, #RRGGBB or #RRGGBBAA. Colours without an alpha
// are opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("colour %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
