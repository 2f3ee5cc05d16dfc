package internal

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembler name of an instruction word, or ??? if the word is not a known instruction.
func Mnemonic(word uint16) string {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Instruction != nil && op.Info.Mask&word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "???"
}
