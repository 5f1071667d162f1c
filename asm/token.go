package asm

import (
	"strings"

	"github.com/dpino/8-chip/isa"
)

const (
	delimiters  = " \t,"
	maxOperand  = 5
	maxOperands = 3
)

// Record is one tokenized instruction line.
type Record struct {
	Keyword  string   // Mnemonic, as written.
	Operands []string // Operand texts, at most three.
	Column   []int    // Column of the keyword, then of each operand.
}

// token is a word of a source line, with its column.
type token struct {
	Text   string
	Column int
}

// tokenize splits a line into words, dropping any comment and a leading
// address column.
func tokenize(line string) (tokens []token) {
	if n := strings.IndexByte(line, ';'); n >= 0 {
		line = line[:n]
	}

	start := -1
	for n := 0; n <= len(line); n++ {
		if n == len(line) || strings.IndexByte(delimiters, line[n]) >= 0 {
			if start >= 0 {
				tokens = append(tokens, token{Text: line[start:n], Column: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = n
		}
	}

	if len(tokens) > 0 && isAddressColumn(tokens[0].Text) {
		tokens = tokens[1:]
	}

	return
}

func isAddressColumn(text string) bool {
	return len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X")
}

// record validates tokens as an instruction.
func record(line string, tokens []token) (rec Record, err error) {
	if len(tokens) == 0 {
		return
	}

	keyword := tokens[0]
	if len(keyword.Text) > isa.MaxKeyword {
		err = ErrSyntax{Line: line, Column: keyword.Column, Err: ErrKeywordInvalid}
		return
	}

	operands := tokens[1:]
	if len(operands) > maxOperands {
		err = ErrSyntax{Line: line, Column: operands[maxOperands].Column, Err: ErrOperandExtra}
		return
	}

	rec.Keyword = keyword.Text
	rec.Column = []int{keyword.Column}
	for _, op := range operands {
		if len(op.Text) > maxOperand {
			err = ErrSyntax{Line: line, Column: op.Column, Err: ErrOperandTooLong}
			rec = Record{}
			return
		}
		rec.Operands = append(rec.Operands, op.Text)
		rec.Column = append(rec.Column, op.Column)
	}

	return
}

// ParseLine tokenizes a single line of assembly text.
//
// A blank or comment-only line yields an empty Record. Errors are
// ErrSyntax values with the Column of the offending token; the LineNo
// is left for the caller to fill in.
func ParseLine(line string) (rec Record, err error) {
	return record(line, tokenize(line))
}
