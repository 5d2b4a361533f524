package surface

import (
	"errors"
	"fmt"
	"strings"
)

type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

var ErrUnknownTool = errors.New("unknown tool")

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// ParseTool accepts the names produced by Tool.String, case-insensitively.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brush":
		return ToolBrush, nil
	case "eraser":
		return ToolEraser, nil
	}
	return ToolBrush, fmt.Errorf("%w %q", ErrUnknownTool, name)
}

func (t Tool) MarshalText() ([]byte, error) {
	if t != ToolBrush && t != ToolEraser {
		return nil, fmt.Errorf("%w %d", ErrUnknownTool, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(text []byte) error {
	parsed, err := ParseTool(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
