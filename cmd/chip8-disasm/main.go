// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dpino/8-chip/disasm"
	chipio "github.com/dpino/8-chip/io"
	"github.com/dpino/8-chip/isa"
)

func main() {
	var origin string
	var labels bool

	flag.StringVar(&origin, "origin", fmt.Sprintf("%#x", isa.PROGRAM_START), "Address of the first ROM byte")
	flag.BoolVar(&labels, "labels", false, "Label JUMP and CALL targets")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-origin ADDR] [-labels] file.rom\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	addr, err := strconv.ParseUint(origin, 0, 12)
	if err != nil {
		log.Fatalf("-origin %v: %v", origin, err)
	}

	path := flag.Arg(0)
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	rom, err := chipio.ReadRom(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	out := bufio.NewWriter(os.Stdout)
	dis := disasm.Disassembler{Origin: uint16(addr), Labels: labels}
	failed, err := dis.Listing(out, rom)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if failed > 0 {
		log.Printf("%v: %d words failed to decode", path, failed)
		os.Exit(1)
	}
}
