package physics

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/nbody/internal/dynamo"
)

func TestScatterGenerate(t *testing.T) {
	s := DefaultScatter()
	rng := rand.New(rand.NewSource(7))

	sys, err := s.Generate(rng, 500)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(sys) != 500 {
		t.Fatalf("got %d bodies, want 500", len(sys))
	}

	for i, b := range sys {
		if b.Position[0] < 0 || b.Position[0] >= 10 || b.Position[1] < 0 || b.Position[1] >= 10 {
			t.Errorf("body %d position %v outside [0,10)^2", i, b.Position)
		}
		if b.Mass < 1 || b.Mass >= 5 {
			t.Errorf("body %d mass %v outside [1,5)", i, b.Mass)
		}
		if b.Velocity[0] != 0 || b.Velocity[1] != 0 {
			t.Errorf("body %d velocity %v, want zero", i, b.Velocity)
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	s := DefaultScatter()
	a, _ := s.Generate(rand.New(rand.NewSource(42)), 5)
	b, _ := s.Generate(rand.New(rand.NewSource(42)), 5)

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("body %d differs for the same seed: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestScatterInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, n := range []int{0, -3} {
		if _, err := DefaultScatter().Generate(rng, n); !errors.Is(err, dynamo.ErrInvalidArgument) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidArgument", n, err)
		}
	}

	bad := []Scatter{
		{Bounds: 0, MinMass: 1, MaxMass: 5},
		{Bounds: 10, MinMass: 0, MaxMass: 5},
		{Bounds: 10, MinMass: 5, MaxMass: 1},
	}
	for _, s := range bad {
		if _, err := s.Generate(rng, 3); !errors.Is(err, dynamo.ErrInvalidArgument) {
			t.Errorf("%+v: error = %v, want ErrInvalidArgument", s, err)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 12 ", 12, false},
		{"", 0, true},
		{"abc", 0, true},
		{"2.5", 0, true},
		{"0", 0, true},
		{"-4", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCount(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, dynamo.ErrInvalidArgument) {
			t.Errorf("ParseCount(%q) error %v is not ErrInvalidArgument", tt.arg, err)
		}
		if got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}
