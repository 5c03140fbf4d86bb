package main

import (
	"bufio"
	"io"
)

// Execution starts at 0x3000 by architecture convention; below it live
// the trap vector and interrupt tables.
const pcStart = 0x3000

// condition codes, exactly one is set after any flag setting instruction
const (
	flagP = 1 << 0
	flagZ = 1 << 1
	flagN = 1 << 2
)

// opcodes, bits 15:12 of the instruction word
const (
	opBR   = iota // branch
	opADD         // add
	opLD          // load
	opST          // store
	opJSR         // jump to subroutine
	opAND         // bitwise and
	opLDR         // load base+offset
	opSTR         // store base+offset
	opRTI         // unsupported
	opNOT         // bitwise complement
	opLDI         // load indirect
	opSTI         // store indirect
	opJMP         // jump
	opRES         // reserved, illegal
	opLEA         // load effective address
	opTRAP        // trap service routine
)

// LC3 is a single LC-3 machine: eight general registers, the program
// counter, the condition codes and 64 KW of word memory with the
// keyboard registers mapped into it.
type LC3 struct {
	R    [8]uint16 // R0-R7
	PC   uint16
	Cond uint16

	mem Memory
	kbd Keyboard
	out *bufio.Writer

	running bool
}

// New returns a reset LC3 wired to the supplied keyboard and console
// output.
func New(kbd Keyboard, out io.Writer) *LC3 {
	cpu := &LC3{kbd: kbd, out: bufio.NewWriter(out)}
	cpu.mem.kbd = kbd
	cpu.Reset()
	return cpu
}

// Reset clears the registers and memory and points the PC at the
// conventional start address.
func (cpu *LC3) Reset() {
	cpu.R = [8]uint16{}
	cpu.mem.core = [memorySize]uint16{}
	cpu.PC = pcStart
	cpu.Cond = flagZ
	cpu.running = true
}

// Load writes words into memory starting at addr.
func (cpu *LC3) Load(addr uint16, words ...uint16) {
	for i, w := range words {
		cpu.write16(addr+uint16(i), w)
	}
}

// Run executes instructions until a HALT trap or a machine fault.
func (cpu *LC3) Run() error {
	for cpu.running {
		if err := cpu.step(); err != nil {
			return err
		}
	}
	return nil
}

// step runs one fetch-decode-execute cycle. The PC is incremented
// immediately after the fetch, so PC relative offsets are taken from
// the incremented value.
func (cpu *LC3) step() error {
	instr := cpu.read16(cpu.PC)
	cpu.PC++

	switch instr >> 12 {
	case opBR:
		cpu.BR(instr)
	case opADD:
		cpu.ADD(instr)
	case opLD:
		cpu.LD(instr)
	case opST:
		cpu.ST(instr)
	case opJSR:
		cpu.JSR(instr)
	case opAND:
		cpu.AND(instr)
	case opLDR:
		cpu.LDR(instr)
	case opSTR:
		cpu.STR(instr)
	case opNOT:
		cpu.NOT(instr)
	case opLDI:
		cpu.LDI(instr)
	case opSTI:
		cpu.STI(instr)
	case opJMP:
		cpu.JMP(instr)
	case opLEA:
		cpu.LEA(instr)
	case opTRAP:
		return cpu.TRAP(instr)
	default: // opRTI, opRES
		return fault{cpu.PC - 1, instr}
	}
	return nil
}

// ADD 0001 DR SR1 0 00 SR2 | 0001 DR SR1 1 imm5
func (cpu *LC3) ADD(instr uint16) {
	dr := instr >> 9 & 7
	sr1 := instr >> 6 & 7
	if instr&(1<<5) != 0 {
		cpu.R[dr] = cpu.R[sr1] + signExtend(instr&0x1f, 5)
	} else {
		cpu.R[dr] = cpu.R[sr1] + cpu.R[instr&7]
	}
	cpu.setFlags(dr)
}

// AND 0101 DR SR1 0 00 SR2 | 0101 DR SR1 1 imm5
func (cpu *LC3) AND(instr uint16) {
	dr := instr >> 9 & 7
	sr1 := instr >> 6 & 7
	if instr&(1<<5) != 0 {
		cpu.R[dr] = cpu.R[sr1] & signExtend(instr&0x1f, 5)
	} else {
		cpu.R[dr] = cpu.R[sr1] & cpu.R[instr&7]
	}
	cpu.setFlags(dr)
}

// NOT 1001 DR SR 111111
func (cpu *LC3) NOT(instr uint16) {
	dr := instr >> 9 & 7
	cpu.R[dr] = ^cpu.R[instr>>6&7]
	cpu.setFlags(dr)
}

// BR 0000 N Z P PCoffset9
func (cpu *LC3) BR(instr uint16) {
	if instr>>9&7&cpu.Cond != 0 {
		cpu.PC += signExtend(instr&0x1ff, 9)
	}
}

// JMP 1100 000 BaseR 000000; RET is JMP through R7
func (cpu *LC3) JMP(instr uint16) {
	cpu.PC = cpu.R[instr>>6&7]
}

// JSR 0100 1 PCoffset11 | JSRR 0100 0 00 BaseR 000000
// R7 receives the address of the following instruction before the PC
// is altered.
func (cpu *LC3) JSR(instr uint16) {
	cpu.R[7] = cpu.PC
	if instr&(1<<11) != 0 {
		cpu.PC += signExtend(instr&0x7ff, 11)
	} else {
		cpu.PC = cpu.R[instr>>6&7]
	}
}

// LD 0010 DR PCoffset9
func (cpu *LC3) LD(instr uint16) {
	dr := instr >> 9 & 7
	cpu.R[dr] = cpu.read16(cpu.PC + signExtend(instr&0x1ff, 9))
	cpu.setFlags(dr)
}

// LDI 1010 DR PCoffset9, one level of indirection
func (cpu *LC3) LDI(instr uint16) {
	dr := instr >> 9 & 7
	cpu.R[dr] = cpu.read16(cpu.read16(cpu.PC + signExtend(instr&0x1ff, 9)))
	cpu.setFlags(dr)
}

// LDR 0110 DR BaseR offset6
func (cpu *LC3) LDR(instr uint16) {
	dr := instr >> 9 & 7
	cpu.R[dr] = cpu.read16(cpu.R[instr>>6&7] + signExtend(instr&0x3f, 6))
	cpu.setFlags(dr)
}

// LEA 1110 DR PCoffset9, address computation only
func (cpu *LC3) LEA(instr uint16) {
	dr := instr >> 9 & 7
	cpu.R[dr] = cpu.PC + signExtend(instr&0x1ff, 9)
	cpu.setFlags(dr)
}

// ST 0011 SR PCoffset9
func (cpu *LC3) ST(instr uint16) {
	cpu.write16(cpu.PC+signExtend(instr&0x1ff, 9), cpu.R[instr>>9&7])
}

// STI 1011 SR PCoffset9
func (cpu *LC3) STI(instr uint16) {
	cpu.write16(cpu.read16(cpu.PC+signExtend(instr&0x1ff, 9)), cpu.R[instr>>9&7])
}

// STR 0111 SR BaseR offset6
func (cpu *LC3) STR(instr uint16) {
	cpu.write16(cpu.R[instr>>6&7]+signExtend(instr&0x3f, 6), cpu.R[instr>>9&7])
}

func (cpu *LC3) read16(a uint16) uint16 {
	return cpu.mem.read16(a)
}

func (cpu *LC3) write16(a, v uint16) {
	cpu.mem.write16(a, v)
}

// setFlags sets the condition codes from the value in register r.
func (cpu *LC3) setFlags(r uint16) {
	switch {
	case cpu.R[r] == 0:
		cpu.Cond = flagZ
	case cpu.R[r]&0x8000 != 0:
		cpu.Cond = flagN
	default:
		cpu.Cond = flagP
	}
}

// signExtend widens the low width bits of x to 16 bits, filling the
// high bits with the sign bit.
func signExtend(x uint16, width uint) uint16 {
	if x>>(width-1)&1 != 0 {
		x |= 0xffff << width
	}
	return x
}
