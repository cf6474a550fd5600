package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui. Auto means
// "only when stdout is a terminal".
type switchMode uint8

const (
	modeAuto switchMode = iota
	modeOn
	modeOff
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	}
	return modeAuto, usageError{err: fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)}
}

// resolve decides an auto value by whether stdout is a terminal.
func (m switchMode) resolve() bool {
	if m == modeAuto {
		return isTerminal(os.Stdout)
	}
	return m == modeOn
}

// shouldUseTUI decides whether a run over fileCount files gets the live
// progress view. A single file never does.
func shouldUseTUI(mode switchMode, fileCount int) bool {
	return fileCount >= 2 && mode.resolve()
}
