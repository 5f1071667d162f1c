package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line     string
		expected Record
	}{
		{"", Record{}},
		{"   ; just a comment", Record{}},
		{"CLS", Record{Keyword: "CLS", Column: []int{0}}},
		{"\tRET ; return", Record{Keyword: "RET", Column: []int{1}}},
		{"LOAD #a, 0x02", Record{Keyword: "LOAD", Operands: []string{"#a", "0x02"}, Column: []int{0, 5, 9}}},
		{"DRAW #1,#2,5", Record{Keyword: "DRAW", Operands: []string{"#1", "#2", "5"}, Column: []int{0, 5, 8, 11}}},
		{"0x200  LOAD #a, 0x02  ; 0x6a02", Record{Keyword: "LOAD", Operands: []string{"#a", "0x02"}, Column: []int{7, 12, 16}}},
	}

	for _, entry := range table {
		rec, err := ParseLine(entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.expected, rec, entry.line)
	}
}

func TestParseLine_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line   string
		err    error
		column int
	}{
		{"LOADIX 0x200", ErrKeywordInvalid, 0},
		{"LOAD #a, 0x0002", ErrOperandTooLong, 9},
		{"DRAW 1, 2, 3, 4", ErrOperandExtra, 14},
	}

	for _, entry := range table {
		_, err := ParseLine(entry.line)
		assert.ErrorIs(err, entry.err, entry.line)
		var syn ErrSyntax
		if assert.True(errors.As(err, &syn), entry.line) {
			assert.Equal(entry.column, syn.Column, entry.line)
			assert.Equal(entry.line, syn.Line)
		}
	}
}

func TestErrSyntax_Marker(t *testing.T) {
	assert := assert.New(t)

	err := ErrSyntax{LineNo: 3, Line: "\tLOAD #a, 0x0002", Column: 10, Err: ErrOperandTooLong}
	assert.Equal("\tLOAD #a, 0x0002\n\t         ^", err.Marker())
}
