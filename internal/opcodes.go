package internal

import (
	"github.com/mnafees/chopper/v2/pkg/screen"
)

type opcodeHandler func(vm *C8VM, in Instruction) error

// opcodeHandlers is indexed by the highest 4 bits of the instruction
var opcodeHandlers = [16]opcodeHandler{
	(*C8VM).op0,
	(*C8VM).op1,
	(*C8VM).op2,
	(*C8VM).op3,
	(*C8VM).op4,
	(*C8VM).op5,
	(*C8VM).op6,
	(*C8VM).op7,
	(*C8VM).op8,
	(*C8VM).op9,
	(*C8VM).opA,
	(*C8VM).opB,
	(*C8VM).opC,
	(*C8VM).opD,
	(*C8VM).opE,
	(*C8VM).opF,
}

// skip jumps over the next instruction. The 4 byte F000 NNNN counts as one instruction.
func (vm *C8VM) skip() {
	if vm.quirks.MemoryExtensions {
		if next, err := vm.fetchWord(vm.pc); err == nil && next == 0xF000 {
			vm.pc += 4
			return
		}
	}
	vm.pc += 2
}

func (vm *C8VM) op0(in Instruction) error {
	switch in.Word {
	case 0x00E0: // CLS
		vm.io.Display.Clear()
		return nil
	case 0x00EE: // RET
		addr, err := vm.popReturn()
		if err != nil {
			return err
		}
		vm.pc = addr
		return nil
	default: // SYS nnn, machine code routines can not be emulated
		return ErrUnsupportedOpcode
	}
}

// JP nnn
func (vm *C8VM) op1(in Instruction) error {
	vm.pc = in.NNN
	return nil
}

// CALL nnn
func (vm *C8VM) op2(in Instruction) error {
	if err := vm.pushReturn(vm.pc); err != nil {
		return err
	}
	vm.pc = in.NNN
	return nil
}

// SE Vx, kk
func (vm *C8VM) op3(in Instruction) error {
	if vm.regV[in.X] == in.NN {
		vm.skip()
	}
	return nil
}

// SNE Vx, kk
func (vm *C8VM) op4(in Instruction) error {
	if vm.regV[in.X] != in.NN {
		vm.skip()
	}
	return nil
}

func (vm *C8VM) op5(in Instruction) error {
	switch in.N {
	case 0x0: // SE Vx, Vy
		if vm.regV[in.X] == vm.regV[in.Y] {
			vm.skip()
		}
		return nil
	case 0x2: // SAVE Vx - Vy
		if vm.quirks.MemoryExtensions {
			return vm.saveRange(in.X, in.Y)
		}
	case 0x3: // LOAD Vx - Vy
		if vm.quirks.MemoryExtensions {
			return vm.loadRange(in.X, in.Y)
		}
	}
	return ErrUnsupportedOpcode
}

// LD Vx, kk
func (vm *C8VM) op6(in Instruction) error {
	vm.regV[in.X] = in.NN
	return nil
}

// ADD Vx, kk, no carry
func (vm *C8VM) op7(in Instruction) error {
	vm.regV[in.X] += in.NN
	return nil
}

func (vm *C8VM) op8(in Instruction) error {
	vx, vy := vm.regV[in.X], vm.regV[in.Y]
	var result, flag uint8

	switch in.N {
	case 0x0: // LD Vx, Vy
		vm.regV[in.X] = vy
		return nil
	case 0x1, 0x2, 0x3: // OR, AND, XOR
		switch in.N {
		case 0x1:
			vm.regV[in.X] = vx | vy
		case 0x2:
			vm.regV[in.X] = vx & vy
		default:
			vm.regV[in.X] = vx ^ vy
		}
		if vm.quirks.LogicResetsVF {
			vm.regV[0xF] = 0
		}
		return nil
	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		result = uint8(sum)
		if sum > 0xFF {
			flag = 1
		}
	case 0x5: // SUB Vx, Vy, VF is NOT borrow
		result = vx - vy
		if vx >= vy {
			flag = 1
		}
	case 0x6: // SHR Vx {, Vy}
		src := vx
		if vm.quirks.ShiftUsesVY {
			src = vy
		}
		result = src >> 1
		flag = src & 0x01
	case 0x7: // SUBN Vx, Vy, VF is NOT borrow
		result = vy - vx
		if vy >= vx {
			flag = 1
		}
	case 0xE: // SHL Vx {, Vy}
		src := vx
		if vm.quirks.ShiftUsesVY {
			src = vy
		}
		result = src << 1
		flag = src >> 7
	default:
		return ErrUnsupportedOpcode
	}

	vm.regV[in.X] = result
	vm.regV[0xF] = flag
	return nil
}

func (vm *C8VM) op9(in Instruction) error {
	if in.N != 0 {
		return ErrUnsupportedOpcode
	}
	// SNE Vx, Vy
	if vm.regV[in.X] != vm.regV[in.Y] {
		vm.skip()
	}
	return nil
}

// LD I, nnn
func (vm *C8VM) opA(in Instruction) error {
	vm.regI = in.NNN
	return nil
}

// JP V0, nnn
func (vm *C8VM) opB(in Instruction) error {
	vm.pc = in.NNN + uint16(vm.regV[0])
	return nil
}

// RND Vx, kk
func (vm *C8VM) opC(in Instruction) error {
	vm.regV[in.X] = vm.random() & in.NN
	return nil
}

// DRW Vx, Vy, n
func (vm *C8VM) opD(in Instruction) error {
	x := int(vm.regV[in.X]) % screen.Width
	y := int(vm.regV[in.Y]) % screen.Height

	// rows and columns past the edge are clipped, not wrapped
	rows := min(int(in.N), screen.Height-y)
	cols := min(8, screen.Width-x)

	sprite, err := vm.span(vm.regI, rows)
	if err != nil {
		return err
	}

	var flips screen.Pixels
	for row, spriteByte := range sprite {
		for col := 0; col < cols; col++ {
			flips[y+row][x+col] = spriteByte&(0x80>>col) != 0
		}
	}

	vm.regV[0xF] = 0
	if vm.io.Display.Draw(&flips) {
		vm.regV[0xF] = 1
	}
	return nil
}

func (vm *C8VM) opE(in Instruction) error {
	pressed := vm.io.Input.PressedKeys().Has(vm.regV[in.X])
	switch in.NN {
	case 0x9E: // SKP Vx
		if pressed {
			vm.skip()
		}
	case 0xA1: // SKNP Vx
		if !pressed {
			vm.skip()
		}
	default:
		return ErrUnsupportedOpcode
	}
	return nil
}

func (vm *C8VM) opF(in Instruction) error {
	switch in.NN {
	case 0x00: // LD I, nnnn
		if in.X != 0 || !vm.quirks.MemoryExtensions {
			return ErrUnsupportedOpcode
		}
		addr, err := vm.fetchWord(vm.pc)
		if err != nil {
			return err
		}
		vm.regI = addr
		vm.pc += 2
	case 0x07: // LD Vx, DT
		vm.regV[in.X] = vm.delayTimer
	case 0x0A: // LD Vx, K
		vm.waitKey(in.X)
	case 0x15: // LD DT, Vx
		vm.delayTimer = vm.regV[in.X]
	case 0x18: // LD ST, Vx
		vm.soundTimer = vm.regV[in.X]
	case 0x1E: // ADD I, Vx
		vm.regI += uint16(vm.regV[in.X])
		if vm.regI > 0x0FFF {
			vm.regV[0xF] = 1
		}
	case 0x29: // LD F, Vx
		vm.regI = fontGlyphAddress(vm.regV[in.X])
	case 0x33: // LD B, Vx
		digits, err := vm.span(vm.regI, 3)
		if err != nil {
			return err
		}
		vx := vm.regV[in.X]
		digits[0] = vx / 100
		digits[1] = (vx / 10) % 10
		digits[2] = vx % 10
	case 0x55: // LD [I], Vx
		mem, err := vm.span(vm.regI, int(in.X)+1)
		if err != nil {
			return err
		}
		copy(mem, vm.regV[:in.X+1])
		if vm.quirks.LoadStoreMovesI {
			vm.regI += uint16(in.X) + 1
		}
	case 0x65: // LD Vx, [I]
		mem, err := vm.span(vm.regI, int(in.X)+1)
		if err != nil {
			return err
		}
		copy(vm.regV[:in.X+1], mem)
		if vm.quirks.LoadStoreMovesI {
			vm.regI += uint16(in.X) + 1
		}
	default:
		return ErrUnsupportedOpcode
	}
	return nil
}

// waitKey completes once a key has been pressed and released. Until then the
// instruction is rewound so it runs again on the next cycle and the frame loop keeps going.
func (vm *C8VM) waitKey(x uint8) {
	pressed := vm.io.Input.PressedKeys()
	if vm.latch.held && !pressed.Has(vm.latch.key) {
		vm.regV[x] = vm.latch.key
		vm.latch.release()
		return
	}
	if !vm.latch.held {
		if key, ok := pressed.First(); ok {
			vm.latch.hold(key)
		}
	}
	vm.pc -= 2
}

// registerRange returns the registers from x to y in either direction
func registerRange(x, y uint8) []uint8 {
	regs := make([]uint8, 0, 16)
	if x <= y {
		for r := x; r <= y; r++ {
			regs = append(regs, r)
		}
		return regs
	}
	for r := int(x); r >= int(y); r-- {
		regs = append(regs, uint8(r))
	}
	return regs
}

func (vm *C8VM) saveRange(x, y uint8) error {
	regs := registerRange(x, y)
	mem, err := vm.span(vm.regI, len(regs))
	if err != nil {
		return err
	}
	for i, r := range regs {
		mem[i] = vm.regV[r]
	}
	return nil
}

func (vm *C8VM) loadRange(x, y uint8) error {
	regs := registerRange(x, y)
	mem, err := vm.span(vm.regI, len(regs))
	if err != nil {
		return err
	}
	for i, r := range regs {
		vm.regV[r] = mem[i]
	}
	return nil
}
