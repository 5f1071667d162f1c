// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpino/8-chip/asm"
	"github.com/dpino/8-chip/emulator"
	chipio "github.com/dpino/8-chip/io"
)

func main() {
	var verbose bool
	defines := map[string]string{}

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("expected NAME=VALUE, got %q", arg)
		}
		defines[name] = value
		return nil
	})

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-v] [-D NAME=VALUE]... input.asm [output.rom]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	input := flag.Arg(0)
	output := flag.Arg(1)
	if len(output) == 0 {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".rom"
		defer fmt.Printf("Generated: %v\n", output)
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	for key, value := range emulator.NewEmulator().Defines() {
		assembler.Predefine(key, value)
	}
	for key, value := range defines {
		assembler.Predefine(key, value)
	}

	prog, err := assembler.Parse(inf)
	if err != nil {
		var syn asm.ErrSyntax
		if errors.As(err, &syn) {
			log.Fatalf("%v:%v: %v\n%v", input, syn.LineNo, syn.Err, syn.Marker())
		}
		log.Fatalf("%v: %v", input, err)
	}

	ouf, err := os.Create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	err = chipio.WriteRom(ouf, prog.Binary())
	if err != nil {
		ouf.Close()
		log.Fatalf("%v: %v", output, err)
	}

	err = ouf.Close()
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
