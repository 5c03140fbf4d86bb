package main

// memorySize is the full 16 bit address space in words.
const memorySize = 1 << 16

// memory mapped keyboard registers
const (
	// KBSR is the keyboard status register. Bit 15 is set while a key
	// is waiting in KBDR.
	KBSR = 0xFE00
	// KBDR is the keyboard data register.
	KBDR = 0xFE02
)

// Memory is the LC-3 address space: 64 KW of core shared by program,
// data and the memory mapped keyboard registers.
type Memory struct {
	core [memorySize]uint16

	kbd Keyboard
}

// read16 reads the word at a. A read of KBSR first polls the keyboard:
// if a key is waiting it is consumed into KBDR and bit 15 of KBSR is
// set, otherwise KBSR is cleared. The status update happens before the
// stored word is returned, so a read of KBDR without a prior status
// poll returns whatever was latched last, which is how the hardware
// behaves.
func (m *Memory) read16(a uint16) uint16 {
	if a == KBSR {
		m.poll()
	}
	return m.core[a]
}

// write16 writes v to a. Stores are plain, even at the device
// addresses.
func (m *Memory) write16(a, v uint16) {
	m.core[a] = v
}

func (m *Memory) poll() {
	if m.kbd == nil || !m.kbd.Ready() {
		m.core[KBSR] = 0
		return
	}
	key, err := m.kbd.ReadKey()
	if err != nil {
		m.core[KBSR] = 0
		return
	}
	m.core[KBSR] = 1 << 15
	m.core[KBDR] = uint16(key)
}
