// lc3 emulator.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

func main() {
	var cli struct {
		Run runCmd `cmd:"" default:"1" help:"run LC-3 program images"`
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(&kong.Context{})
	ctx.FatalIfErrorf(err)
}

type runCmd struct {
	Images []string `arg:"" optional:"" name:"image" help:"LC-3 program images, loaded in argument order" type:"existingfile"`
}

func (r *runCmd) Run(ctx *kong.Context) error {
	if len(r.Images) == 0 {
		fmt.Fprintln(os.Stderr, "lc3 [image-file1] ...")
		os.Exit(2)
	}

	cpu := New(&stdinKeyboard{f: os.Stdin}, os.Stdout)
	for _, image := range r.Images {
		if err := cpu.LoadImage(image); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	restore, err := rawMode(os.Stdin.Fd())
	if err != nil {
		return err
	}
	defer restore()

	done := make(chan error, 1)
	go func() { done <- cpu.Run() }()

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)

	select {
	case err := <-done:
		return err
	case <-intr:
		// The run loop may be blocked in a GETC read; put the terminal
		// back before going down, the deferred restore never runs past
		// os.Exit.
		restore()
		fmt.Println()
		os.Exit(254)
	}
	return nil
}
