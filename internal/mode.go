package internal

import (
	"fmt"
	"strings"
)

// Mode selects the CHIP-8 variant whose quirks the VM follows
type Mode int

// Supported compatibility modes
const (
	ModeChip8 Mode = iota
	ModeSuperChip
	ModeXOChip
)

var modeNames = map[Mode]string{
	ModeChip8:     "chip8",
	ModeSuperChip: "schip",
	ModeXOChip:    "xochip",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode selector given at startup
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "chip8", "chip-8":
		return ModeChip8, nil
	case "schip", "superchip", "super-chip":
		return ModeSuperChip, nil
	case "xochip", "xo-chip":
		return ModeXOChip, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: chip8, schip, xochip)", ErrInvalidMode, s)
	}
}

// Quirks is the set of behaviours that differ between modes
type Quirks struct {
	ShiftUsesVY      bool // 8XY6/8XYE shift Vy into Vx instead of shifting Vx in place
	LoadStoreMovesI  bool // FX55/FX65 leave I pointing past the last register
	LogicResetsVF    bool // 8XY1/8XY2/8XY3 clear VF
	MemoryExtensions bool // 5XY2, 5XY3 and the 4 byte F000 NNNN
}

// Quirks returns the quirk set of the mode
func (m Mode) Quirks() Quirks {
	switch m {
	case ModeSuperChip:
		return Quirks{}
	case ModeXOChip:
		return Quirks{
			ShiftUsesVY:      true,
			LoadStoreMovesI:  true,
			MemoryExtensions: true,
		}
	default:
		return Quirks{
			ShiftUsesVY:     true,
			LoadStoreMovesI: true,
			LogicResetsVF:   true,
		}
	}
}
