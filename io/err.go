package io

import (
	"errors"

	"github.com/dpino/8-chip/translate"
)

var f = translate.From

var (
	ErrRomTooLarge = errors.New(f("rom too large"))
	ErrRomEmpty    = errors.New(f("rom empty"))
	ErrKeyInvalid  = errors.New(f("key invalid"))
)
