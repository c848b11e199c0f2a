package registry

import (
	"errors"
	"testing"
)

func TestNormalizeHouseID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"100", "100"},
		{" 42 ", "42"},
		{"042", "42"},
		{"administración", AdminHouseID},
		{"Administracion", AdminHouseID},
		{"ADMIN", AdminHouseID},
	}
	for _, tc := range cases {
		got, err := NormalizeHouseID(tc.in)
		if err != nil {
			t.Fatalf("NormalizeHouseID(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeHouseID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeHouseIDRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"0", "101", "-1", "12.5", "casa"} {
		if _, err := NormalizeHouseID(in); !errors.Is(err, ErrInvalidHouseID) {
			t.Fatalf("NormalizeHouseID(%q): expected ErrInvalidHouseID, got %v", in, err)
		}
	}
}

func TestNormalizeHouseIDRequiresValue(t *testing.T) {
	for _, in := range []string{"", "   "} {
		if _, err := NormalizeHouseID(in); !errors.Is(err, ErrMissingField) {
			t.Fatalf("NormalizeHouseID(%q): expected ErrMissingField, got %v", in, err)
		}
	}
}

func TestPartitionName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"unica", "Registros_Unica"},
		{"UNICA", "Registros_Unica"},
		{"  privada del sol ", "Registros_Privada del sol"},
	}
	for _, tc := range cases {
		got, err := PartitionName(DefaultPartitionPrefix, tc.in)
		if err != nil {
			t.Fatalf("PartitionName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("PartitionName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPartitionNameRequiresCondominio(t *testing.T) {
	if _, err := PartitionName(DefaultPartitionPrefix, "  "); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
