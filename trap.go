package main

import "fmt"

// trap vectors of the built in service routines
const (
	trapGETC  = 0x20 // read one key, not echoed
	trapOUT   = 0x21 // write the low byte of R0
	trapPUTS  = 0x22 // write the word string at R0
	trapIN    = 0x23 // prompt, read and echo one key
	trapPUTSP = 0x24 // write the packed byte string at R0
	trapHALT  = 0x25 // stop the machine
)

// fault is an unrecoverable machine condition: the reserved opcode,
// RTI, or an unknown trap vector was fetched. The instruction set
// defines no behavior for these, so execution cannot continue.
type fault struct {
	pc    uint16
	instr uint16
}

func (f fault) Error() string {
	return fmt.Sprintf("illegal instruction %04x at %04x", f.instr, f.pc)
}

// TRAP 1111 0000 trapvect8
func (cpu *LC3) TRAP(instr uint16) error {
	switch instr & 0xff {
	case trapGETC:
		return cpu.GETC()
	case trapOUT:
		return cpu.OUT()
	case trapPUTS:
		return cpu.PUTS()
	case trapIN:
		return cpu.IN()
	case trapPUTSP:
		return cpu.PUTSP()
	case trapHALT:
		return cpu.HALT()
	default:
		return fault{cpu.PC - 1, instr}
	}
}

// GETC 0x20: read one key into R0 without echoing it.
func (cpu *LC3) GETC() error {
	key, err := cpu.kbd.ReadKey()
	if err != nil {
		return err
	}
	cpu.R[0] = uint16(key)
	return nil
}

// OUT 0x21: write the low byte of R0 to the console.
func (cpu *LC3) OUT() error {
	cpu.out.WriteByte(byte(cpu.R[0]))
	return cpu.out.Flush()
}

// PUTS 0x22: write the string at R0, one character per word, stopping
// at the zero word.
func (cpu *LC3) PUTS() error {
	for a := cpu.R[0]; ; a++ {
		c := cpu.read16(a)
		if c == 0 {
			break
		}
		cpu.out.WriteByte(byte(c))
	}
	return cpu.out.Flush()
}

// IN 0x23: prompt for a key, echo it and store it in R0.
func (cpu *LC3) IN() error {
	cpu.out.WriteString("Enter a character: ")
	if err := cpu.out.Flush(); err != nil {
		return err
	}
	key, err := cpu.kbd.ReadKey()
	if err != nil {
		return err
	}
	cpu.out.WriteByte(key)
	if err := cpu.out.Flush(); err != nil {
		return err
	}
	cpu.R[0] = uint16(key)
	return nil
}

// PUTSP 0x24: write the packed string at R0, low byte then high byte
// of each word, the high byte only when non zero, stopping at the zero
// word.
func (cpu *LC3) PUTSP() error {
	for a := cpu.R[0]; ; a++ {
		w := cpu.read16(a)
		if w == 0 {
			break
		}
		cpu.out.WriteByte(byte(w))
		if w>>8 != 0 {
			cpu.out.WriteByte(byte(w >> 8))
		}
	}
	return cpu.out.Flush()
}

// HALT 0x25: announce the halt and stop the run loop. No further
// fetch happens after the current instruction.
func (cpu *LC3) HALT() error {
	cpu.out.WriteString("HALT\n")
	cpu.running = false
	return cpu.out.Flush()
}
