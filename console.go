package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// Keyboard feeds the memory mapped keyboard registers and the GETC/IN
// service routines. Ready must never block and must not consume input;
// ReadKey blocks until a key arrives and consumes exactly one. The two
// operations are deliberately distinct: the status register poll may
// not stall the execution loop, while GETC and IN wait for the user.
type Keyboard interface {
	Ready() bool
	ReadKey() (byte, error)
}

// stdinKeyboard reads the host's standard input in raw mode. Readiness
// is a select(2) with a zero timeout, the same polling discipline the
// original hardware used for its status register.
type stdinKeyboard struct {
	f *os.File
}

func (k *stdinKeyboard) Ready() bool {
	fd := int(k.f.Fd())
	var fds unix.FdSet
	fds.Zero()
	fds.Set(fd)
	tv := unix.Timeval{}
	n, err := unix.Select(fd+1, &fds, nil, nil, &tv)
	return err == nil && n > 0
}

func (k *stdinKeyboard) ReadKey() (byte, error) {
	var buf [1]byte
	for {
		n, err := k.f.Read(buf[:])
		if n > 0 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
