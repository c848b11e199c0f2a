package registry

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// AdminHouseID is the canonical house id for the administration office.
	AdminHouseID = "administración"

	minHouseNumber = 1
	maxHouseNumber = 100
)

// NormalizeHouseID validates a raw house id and returns its canonical form:
// the decimal string of an integer in [1,100], or AdminHouseID. The admin
// literal is accepted case- and accent-insensitively ("Administracion",
// "ADMIN", ...).
func NormalizeHouseID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: house id", ErrMissingField)
	}

	switch strings.ToLower(trimmed) {
	case "administración", "administracion", "admin":
		return AdminHouseID, nil
	}

	house, err := strconv.Atoi(trimmed)
	if err != nil || house < minHouseNumber || house > maxHouseNumber {
		return "", fmt.Errorf("%w: %q", ErrInvalidHouseID, raw)
	}
	return strconv.Itoa(house), nil
}

// PartitionName derives the partition for a condominium. All houses of one
// condominium share a partition; the house id only selects rows within it.
// The condominium name is normalized to first-letter-upper, rest-lower, so
// "unica" and "UNICA" land in the same partition.
func PartitionName(prefix, condominio string) (string, error) {
	condominio = strings.TrimSpace(condominio)
	if condominio == "" {
		return "", fmt.Errorf("%w: condominio", ErrMissingField)
	}

	first, size := utf8.DecodeRuneInString(condominio)
	rest := strings.ToLower(condominio[size:])
	return prefix + string(unicode.ToUpper(first)) + rest, nil
}
