package arguments

import (
	"errors"
	"testing"
)

type fakeLoader struct {
	genotypes map[[2]int][2]int
	err       error
}

func (f fakeLoader) InitialGenotype(individual, locus int) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	g := f.genotypes[[2]int{individual, locus}]
	return g[0], g[1], nil
}

func newFakeLoader() fakeLoader {
	return fakeLoader{genotypes: map[[2]int][2]int{
		{0, 0}: {10, 12}, {1, 0}: {14, 16},
		{0, 1}: {10, 12}, {1, 1}: {14, 16},
		{0, 2}: {20, 20}, {1, 2}: {20, 20},
	}}
}

func TestInitMicrosat(t *testing.T) {
	c := mustParse(t, "-rC -l3 -i2 -b2 -d1 -m2,3,4 -t1 -u0 -v1 -o0 -e")
	loader := newFakeLoader()

	tests := []struct {
		locus int
		wantA int
		wantB int
	}{
		{0, 13, 15},
		{1, 13, 16},
		{2, 20, 24},
		// Wraps to locus 1.
		{4, 13, 16},
	}
	for _, tt := range tests {
		a, err := InitMicrosatA(c, loader, tt.locus)
		if err != nil {
			t.Fatalf("locus %d: unexpected error: %v", tt.locus, err)
		}
		if a != tt.wantA {
			t.Errorf("InitMicrosatA(%d): expected %d, got %d", tt.locus, tt.wantA, a)
		}
		b, err := InitMicrosatB(c, loader, tt.locus)
		if err != nil {
			t.Fatalf("locus %d: unexpected error: %v", tt.locus, err)
		}
		if b != tt.wantB {
			t.Errorf("InitMicrosatB(%d): expected %d, got %d", tt.locus, tt.wantB, b)
		}
	}
}

func TestInitMicrosatExamplePopulation(t *testing.T) {
	c := mustParse(t, "-rC -l3 -i2 -b2 -d1 -m2,3,4 -t1 -u0 -v1 -o0 -p")
	loader := fakeLoader{err: errors.New("loader must not be called")}

	a, err := InitMicrosatA(c, loader, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a != ExamplePopulationMicrosatLength {
		t.Errorf("Expected %d, got %d", ExamplePopulationMicrosatLength, a)
	}
	b, err := InitMicrosatB(c, loader, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b != ExamplePopulationMicrosatLength+3 {
		t.Errorf("Expected %d, got %d", ExamplePopulationMicrosatLength+3, b)
	}
}

func TestInitMicrosatErrors(t *testing.T) {
	c := mustParse(t, "-rC -l3 -i2 -b2 -d1 -m2,3,4 -t1 -u0 -v1 -o0 -e")

	sentinel := errors.New("bad genotype file")
	_, err := InitMicrosatA(c, fakeLoader{err: sentinel}, 0)
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected loader error to be wrapped, got %v", err)
	}

	// Fewer motifs than loci.
	c = mustParse(t, "-rC -l3 -i2 -b2 -d1 -m2 -t1 -u0 -v1 -o0 -e")
	if _, err := InitMicrosatA(c, newFakeLoader(), 2); !IsKind(err, KindArgument) {
		t.Errorf("Expected argument error for a missing motif, got %v", err)
	}

	if _, err := InitMicrosatA(New(), newFakeLoader(), 0); !IsKind(err, KindArgument) {
		t.Errorf("Expected argument error without loci, got %v", err)
	}
}
