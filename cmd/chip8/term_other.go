//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package main

import (
	"errors"
)

func enterRawTerm() error {
	return errors.New("raw terminal not supported")
}

func exitRawTerm() {
}
