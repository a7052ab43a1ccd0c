package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinGenerateLength = 4
	MaxGenerateLength = 128
)

var (
	ErrInvalid = errors.New("invalid")

	v = validator.New()
)

// ParseLength reads a requested password length. Blank means def.
func ParseLength(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: length must be a whole number", ErrInvalid)
	}
	if err := Length(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Length checks n against the generator bounds.
func Length(n int) error {
	rule := fmt.Sprintf("min=%d,max=%d", MinGenerateLength, MaxGenerateLength)
	if err := v.Var(n, rule); err != nil {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalid, MinGenerateLength, MaxGenerateLength)
	}
	return nil
}
