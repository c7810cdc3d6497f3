//go:build !linux && !darwin

package main

import (
	"errors"
	"os"
)

func rawMode(f *os.File) (restore func(), err error) {
	return nil, errors.New("play needs a unix terminal")
}
