package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Mode decides which active subject leads each bench
type Mode int

const (
	ColumnAlternating Mode = iota
	ZigZagAlternating
)

const DefaultMode = ColumnAlternating

var modeNames = map[Mode]string{
	ColumnAlternating: "Column Alternating",
	ZigZagAlternating: "Zig-Zag Alternating",
}

// Modes lists every supported mode in a stable order
func Modes() []Mode {
	return []Mode{ColumnAlternating, ZigZagAlternating}
}

func (mode Mode) String() string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

func (mode Mode) valid() bool {
	_, ok := modeNames[mode]
	return ok
}

// ParseMode accepts the display name of a mode ("Column Alternating", "Zig-Zag Alternating"), ignoring case and surrounding blanks
func ParseMode(name string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	mode, ok := lo.FindKeyBy(modeNames, func(_ Mode, modeName string) bool {
		return strings.ToLower(modeName) == normalized
	})
	if !ok {
		return 0, newAllocationError(UnsupportedMode, fmt.Sprintf("unsupported allocation mode: %v", name))
	}
	return mode, nil
}

// Returns the order in which the active subjects take the seats of the bench at (row, col)
func subjectOrder(mode Mode, names []string, row, col int) []string {
	switch mode {
	case ZigZagAlternating:
		if len(names) < 2 || (row+col)%2 == 0 {
			return names
		}
		reversed := slices.Clone(names)
		slices.Reverse(reversed)
		return reversed
	default: // ColumnAlternating
		return names
	}
}
