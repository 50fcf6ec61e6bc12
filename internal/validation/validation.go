// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// MaxNameLength ограничивает длину имени пилота в символах.
const MaxNameLength = 64

// MaxPints ограничивает объём одной записи о выпитом пиве.
const MaxPints = 20

var (
	ErrEmptyName        = errors.New("name must be non-empty")
	ErrNameTooLong      = errors.New("name must be at most 64 characters")
	ErrNameControlChars = errors.New("name must not contain control characters")
)

// NormalizeName убирает пробелы по краям имени пилота и проверяет его корректность.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	n := 0
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", ErrNameControlChars
		}
		n++
	}

	if n > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// IsValidPints проверяет, что объём выпитого положителен и не превышает MaxPints.
func IsValidPints(pints float64) bool {
	return pints > 0 && pints <= MaxPints && !math.IsNaN(pints)
}
