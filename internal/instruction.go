package internal

// Instruction is a decoded 16-bit instruction word
type Instruction struct {
	Word   uint16 // raw instruction word
	Family uint8  // the highest 4 bits, selects the handler
	X      uint8  // the lower 4 bits of the high byte
	Y      uint8  // the upper 4 bits of the low byte
	N      uint8  // the lowest 4 bits
	NN     uint8  // the lowest 8 bits
	NNN    uint16 // the lowest 12 bits
}

// Decode splits an instruction word into its fields. Every word decodes, validity is checked on dispatch.
func Decode(word uint16) Instruction {
	return Instruction{
		Word:   word,
		Family: uint8(word >> 12),
		X:      uint8((word >> 8) & 0x000F),
		Y:      uint8((word >> 4) & 0x000F),
		N:      uint8(word & 0x000F),
		NN:     uint8(word & 0x00FF),
		NNN:    word & 0x0FFF,
	}
}
