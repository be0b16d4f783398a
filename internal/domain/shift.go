package domain

import (
	"fmt"
	"strings"
)

type Shift string

const (
	ShiftAM Shift = "AM"
	ShiftPM Shift = "PM"
)

var Shifts = []Shift{ShiftAM, ShiftPM}

// ParseShift accepts "am"/"pm" in any case.
func ParseShift(s string) (Shift, error) {
	switch Shift(strings.ToUpper(strings.TrimSpace(s))) {
	case ShiftAM:
		return ShiftAM, nil
	case ShiftPM:
		return ShiftPM, nil
	default:
		return "", fmt.Errorf("invalid shift %q, must be AM or PM", s)
	}
}

func (s Shift) Valid() bool {
	return s == ShiftAM || s == ShiftPM
}

func (s Shift) String() string {
	return string(s)
}
