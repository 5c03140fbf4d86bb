package main

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
)

// LoadImage reads an LC-3 program image from path and writes it into
// memory. The first big endian word of the image is the origin; the
// remaining words load sequentially from there. Words past the end of
// the address space are dropped.
func (cpu *LC3) LoadImage(path string) error {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if err := cpu.loadImage(buf); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	return nil
}

func (cpu *LC3) loadImage(buf []byte) error {
	if len(buf) < 2 {
		return fmt.Errorf("image too short: %d bytes", len(buf))
	}
	addr := binary.BigEndian.Uint16(buf)
	for buf = buf[2:]; len(buf) >= 2; buf = buf[2:] {
		cpu.write16(addr, binary.BigEndian.Uint16(buf))
		if addr == memorySize-1 {
			break
		}
		addr++
	}
	return nil
}
