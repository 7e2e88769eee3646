package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/doomcolors/pkg/dcolor"
)

// Value errors.
var (
	ErrInvalidColor     = errors.New("invalid color")
	ErrUnknownBlendMode = errors.New("unknown blend mode")
)

// maxChannel allows the legacy full-intensity value 256.
const maxChannel = 256

// Color is an RGB triple. It reads from YAML as [r, g, b], "#rrggbb"
// or "r,g,b".
type Color dcolor.RGB

// ParseColor parses "#rrggbb" or "r,g,b".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = v
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// String returns the color as "r,g,b", which ParseColor accepts.
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Valid reports whether every channel is in 0..256.
func (c Color) Valid() bool {
	for _, v := range [3]int{c.R, c.G, c.B} {
		if v < 0 || v > maxChannel {
			return false
		}
	}
	return true
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var ch []int
		if err := node.Decode(&ch); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidColor, node.Line, err)
		}
		if len(ch) != 3 {
			return fmt.Errorf("%w: line %d: expected 3 channels, got %d", ErrInvalidColor, node.Line, len(ch))
		}
		*c = Color{R: ch[0], G: ch[1], B: ch[2]}
		return nil
	case yaml.ScalarNode:
		v, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = v
		return nil
	default:
		return fmt.Errorf("%w: line %d: expected sequence or string", ErrInvalidColor, node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler as a flow sequence.
func (c Color) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [3]int{c.R, c.G, c.B} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return node, nil
}

// Mode is a blend mode read from YAML by name.
type Mode dcolor.BlendMode

// String returns the mode name.
func (m Mode) String() string {
	return dcolor.BlendMode(m).String()
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	v, err := dcolor.ParseBlendMode(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownBlendMode, s)
	}
	*m = Mode(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a name", ErrUnknownBlendMode, node.Line)
	}
	if err := m.Set(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
