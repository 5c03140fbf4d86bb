package main

import (
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// rawMode takes the terminal on fd out of canonical echoing mode and
// returns a function that restores the saved state. Only line
// buffering and echo are disabled; reads still block for one byte, as
// GETC and IN require. The restore function must run on every exit
// path.
func rawMode(fd uintptr) (restore func() error, err error) {
	var saved unix.Termios
	if err := termios.Tcgetattr(fd, &saved); err != nil {
		return nil, err
	}
	raw := saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return nil, err
	}
	return func() error {
		return termios.Tcsetattr(fd, termios.TCSANOW, &saved)
	}, nil
}
