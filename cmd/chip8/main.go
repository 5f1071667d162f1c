// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dpino/8-chip/asm"
	"github.com/dpino/8-chip/emulator"
	chipio "github.com/dpino/8-chip/io"
)

func main() {
	var compile string
	var cycles int
	var perTimer int
	var verbose bool
	var screen bool
	var raw bool
	var retNext bool
	var qwerty bool
	var dump bool

	flag.StringVar(&compile, "c", "", ".asm file to compile and run")
	flag.IntVar(&cycles, "n", 0, "Stop after this many cycles, 0 for no limit")
	flag.IntVar(&perTimer, "t", 10, "Cycles per 60 Hz timer tick")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&screen, "screen", false, "Print the screen on exit")
	flag.BoolVar(&raw, "raw", false, "Read keys from a raw mode terminal")
	flag.BoolVar(&retNext, "ret-next", false, "RET resumes after the CALL")
	flag.BoolVar(&qwerty, "qwerty", false, "Map keys 1234/qwer/asdf/zxcv to the hex pad")
	flag.BoolVar(&dump, "dump", false, "Print the machine state on exit")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] [-c file.asm | file.rom]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.CyclesPerTimer = perTimer
	emu.Cpu.Quirks.ReturnPastCall = retNext

	switch {
	case len(compile) != 0 && flag.NArg() == 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			assembler.Predefine(key, value)
		}
		emu.Program, err = assembler.Parse(inf)
		if err != nil {
			var syn asm.ErrSyntax
			if errors.As(err, &syn) {
				log.Fatalf("%v:%v: %v\n%v", compile, syn.LineNo, syn.Err, syn.Marker())
			}
			log.Fatalf("%v: %v", compile, err)
		}
	case len(compile) == 0 && flag.NArg() == 1:
		path := flag.Arg(0)
		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		defer inf.Close()

		err = emu.LoadRom(inf)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	keypad := &chipio.Keypad{Input: os.Stdin}
	if qwerty {
		keypad.Layout = chipio.LAYOUT_QWERTY
	}
	emu.Keys = keypad

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if raw {
		err = enterRawTerm()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ran, err := emu.Run(ctx, cycles)
	stop()

	if raw {
		exitRawTerm()
	}

	if verbose {
		log.Printf("%v: %d cycles", os.Args[0], ran)
	}

	if screen {
		sc := &chipio.Screen{Output: os.Stdout}
		_ = sc.Render(&emu.Cpu.Display)
	}

	if dump {
		fmt.Print(emu.Cpu.String())
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
