// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/dpino/8-chip/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0x0",
	"ORIGIN":      fmt.Sprintf("%#x", isa.PROGRAM_START),
	"FONT":        fmt.Sprintf("%#x", isa.FONT_BASE),
	"FONT_STRIDE": fmt.Sprintf("%#x", isa.FONT_STRIDE),
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for CHIP-8 text, with a final
// link pass for forward label references.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint16 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// origin is the load address of the program.
func (asm *Assembler) origin() uint16 {
	value, err := valueOf(asm.Equate["ORIGIN"])
	if err != nil {
		return isa.PROGRAM_START
	}
	return value
}

// currentAddress is the address of the next word.
func (asm *Assembler) currentAddress() uint16 {
	return asm.origin() + uint16(2*len(asm.Opcode))
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, _err := valueOf(str)
		if _err != nil {
			// Non-integer equates, such as registers written as names.
			continue
		}
		pred[key] = starlark.MakeInt(int(v))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_uint64, ok := st_int.Uint64()
	if !ok || st_uint64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_uint64)
	return
}

// parseLine assembles a single line, appending to asm.Opcode.
func (asm *Assembler) parseLine(text string, lineno int) (line string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%#x", lineno)

	line = reParen.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	tokens := tokenize(line)
	if len(tokens) == 0 {
		return
	}

	// .equ CONST VALUE
	if tokens[0].Text == ".equ" {
		if len(tokens) != 3 {
			err = ErrSyntax{Line: line, Column: tokens[0].Column, Err: ErrEquateSyntax}
			return
		}
		_, ok := asm.Equate[tokens[1].Text]
		if ok {
			err = ErrSyntax{Line: line, Column: tokens[1].Column, Err: ErrEquateDuplicate}
			return
		}
		asm.Equate[tokens[1].Text] = tokens[2].Text
		return
	}

	for n, tok := range tokens {
		equate, ok := asm.Equate[tok.Text]
		if ok {
			tokens[n].Text = equate
		}
	}

	for len(tokens) > 0 && strings.HasSuffix(tokens[0].Text, ":") {
		label := strings.TrimSuffix(tokens[0].Text, ":")
		if len(label) == 0 {
			err = ErrSyntax{Line: line, Column: tokens[0].Column, Err: ErrLabelInvalid}
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrSyntax{Line: line, Column: tokens[0].Column, Err: ErrLabelDuplicate}
			return
		}
		asm.Label[label] = asm.currentAddress()
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return
	}

	words := make([]string, len(tokens))
	for n, tok := range tokens {
		words[n] = tok.Text
	}

	opcode := Opcode{LineNo: lineno, Address: asm.currentAddress(), Words: words}

	// .word VALUE
	if tokens[0].Text == ".word" {
		if len(tokens) != 2 {
			err = ErrSyntax{Line: line, Column: tokens[0].Column, Err: ErrWordSyntax}
			return
		}
		var value uint16
		value, err = valueOf(tokens[1].Text)
		if err != nil {
			err = ErrSyntax{Line: line, Column: tokens[1].Column, Err: err}
			return
		}
		opcode.Word = isa.Word(value)
		asm.Opcode = append(asm.Opcode, opcode)
		return
	}

	// Address operands that are not numbers are label references.
	tmpl, ok := isa.Lookup(tokens[0].Text)
	if ok && tmpl.Class == isa.CLASS_ADDRESS && len(tokens) == 2 {
		_, _err := valueOf(tokens[1].Text)
		if _err != nil {
			opcode.LinkLabel = tokens[1].Text
			tokens[1].Text = "0"
		}
	}

	rec, err := record(line, tokens)
	if err != nil {
		return
	}

	opcode.Word, err = Encode(rec)
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("%v: %#04x %v\n", lineno, opcode.Address, opcode.Word.Value())
	}

	asm.Opcode = append(asm.Opcode, opcode)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err == nil {
			return
		}
		var syn ErrSyntax
		if errors.As(err, &syn) {
			syn.LineNo = lineno
			if len(syn.Line) == 0 {
				syn.Line = line
			}
			err = syn
		} else {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint16, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, err = asm.parseLine(text, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		tmpl, _ := isa.Reverse(op.Word)
		op.Word, err = tmpl.Pack(addr)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Origin:  asm.origin(),
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
