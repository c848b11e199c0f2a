package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// houseNumber accepts either a JSON number or a JSON string; the mobile apps
// send numeric house ids while the admin office sends "administración".
type houseNumber string

func (h *houseNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = houseNumber(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("house_number must be a number or string")
	}
	*h = houseNumber(n.String())
	return nil
}

func (h houseNumber) String() string {
	return string(h)
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}
