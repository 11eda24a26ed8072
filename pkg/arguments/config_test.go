package arguments

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/onesamp/onesamp/pkg/random"
)

func TestNewIsUnset(t *testing.T) {
	c := New()

	checks := map[string]func() error{
		"random source":    func() error { _, err := c.RandomSource(); return err },
		"loci":             func() error { _, err := c.NLoci(); return err },
		"input":            func() error { _, err := c.InputIndividuals(); return err },
		"final":            func() error { _, err := c.FinalIndividuals(); return err },
		"bottleneck":       func() error { _, err := c.BottleneckMin(); return err },
		"bottleneck len":   func() error { _, err := c.BottleneckLengthMax(); return err },
		"mutation rate":    func() error { _, err := c.MutationRateMin(); return err },
		"theta":            func() error { _, err := c.ThetaMax(); return err },
		"locus kind":       func() error { _, err := c.LocusKind(); return err },
		"iterations":       func() error { _, err := c.Iterations(); return err },
		"allele frequency": func() error { _, err := c.MinAlleleFrequency(); return err },
		"omit threshold":   func() error { _, err := c.OmitLocusThreshold(); return err },
	}
	for name, check := range checks {
		if err := check(); !IsKind(err, KindArgument) {
			t.Errorf("%s: expected argument error on a fresh config, got %v", name, err)
		}
	}

	if c.Mode() != ModeFull {
		t.Errorf("Expected ModeFull, got %s", c.Mode())
	}
	if c.FillInAbsentData() {
		t.Errorf("Expected fill-in to be off")
	}
	if c.LociAllocation() != 0 || c.InputIndividualsAllocation() != 0 {
		t.Errorf("Expected zero allocations")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	c := mustParse(t, coalescentArgs)

	c.Reset()
	once := *c
	c.Reset()

	opts := cmp.AllowUnexported(Config{}, optional[int]{}, optional[float64]{},
		optional[Range[int]]{}, optional[Range[float64]]{}, optional[LocusKind]{},
		optional[random.Kind]{})
	// Both copies share one logger value.
	once.log, c.log = nil, nil
	if diff := cmp.Diff(once, *c, opts); diff != "" {
		t.Errorf("Second Reset changed the config (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(Config{}, *c, opts); diff != "" {
		t.Errorf("Reset left fields set (-want +got):\n%s", diff)
	}
}

func TestResetKeepsLogger(t *testing.T) {
	c := New()
	l := quietLogger()
	c.log = l
	c.Reset()
	if c.log != l {
		t.Errorf("Expected Reset to keep the logger")
	}
}

func TestNonPositiveValuesRejected(t *testing.T) {
	c := New()
	c.nLoci = some(0)
	c.inputIndividuals = some(-1)
	c.iterations = some(0)
	c.minAlleleFrequency = some(0.6)
	c.omitThreshold = some(1.5)
	c.mutationRate = some(Range[float64]{Min: -1, Max: 1})
	c.bottleneckLength = some(Range[int]{Min: -1, Max: 3})

	if _, err := c.NLoci(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for zero loci, got %v", err)
	}
	if _, err := c.InputIndividuals(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for negative input, got %v", err)
	}
	if _, err := c.Iterations(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for zero iterations, got %v", err)
	}
	if _, err := c.MinAlleleFrequency(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for frequency above 0.5, got %v", err)
	}
	if _, err := c.OmitLocusThreshold(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for threshold above 1, got %v", err)
	}
	if _, err := c.MutationRateMin(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for negative mutation rate, got %v", err)
	}
	if _, err := c.BottleneckLengthMin(); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for negative duration, got %v", err)
	}
}

func TestSetNLoci(t *testing.T) {
	c := New()
	if err := c.SetNLoci(3); err == nil {
		t.Errorf("Expected error before -l was parsed")
	}

	c = mustParse(t, coalescentArgs)
	if err := c.SetNLoci(40); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n, _ := c.NLoci(); n != 40 {
		t.Errorf("Expected 40 loci, got %d", n)
	}
	if c.LociAllocation() != 50 {
		t.Errorf("Expected allocation to stay 50, got %d", c.LociAllocation())
	}
	if err := c.SetNLoci(51); err == nil {
		t.Errorf("Expected error when growing past the allocation")
	}
	if err := c.SetNLoci(0); err == nil {
		t.Errorf("Expected error for zero loci")
	}
}

func TestSetInputIndividualsMovesFinal(t *testing.T) {
	c := mustParse(t, coalescentArgs)
	if err := c.SetInputIndividuals(25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	n, _ := c.InputIndividuals()
	final, _ := c.FinalIndividuals()
	if n != 25 || final != 25 {
		t.Errorf("Expected input and final 25, got %d and %d", n, final)
	}
	if c.InputIndividualsAllocation() != 30 {
		t.Errorf("Expected allocation 30, got %d", c.InputIndividualsAllocation())
	}
	if err := c.SetInputIndividuals(31); err == nil {
		t.Errorf("Expected error past the allocation")
	}
}

func TestSetMotifLengths(t *testing.T) {
	c := mustParse(t, "-rC -l3 -i4 -b2 -d1 -m2,5 -t1 -u0 -v1 -o0 -e")
	if err := c.SetMotifLengths([]int{2, 7}); err == nil {
		t.Errorf("Expected error for motif 7")
	}
	in := []int{4, 4, 6}
	if err := c.SetMotifLengths(in); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	in[0] = 3

	got, err := c.MotifLengths()
	if err != nil {
		t.Fatalf("Expected replacement to clear the invalid marker, got %v", err)
	}
	if diff := cmp.Diff([]int{4, 4, 6}, got); diff != "" {
		t.Errorf("Motif mismatch (-want +got):\n%s", diff)
	}

	got[0] = 99
	if again, _ := c.MotifLengths(); again[0] != 4 {
		t.Errorf("Expected MotifLengths to return a copy")
	}
}

func TestProportionMissingData(t *testing.T) {
	c := New()
	if err := c.SetProportionMissingData(0.25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.ProportionMissingData() != 0.25 {
		t.Errorf("Expected 0.25, got %v", c.ProportionMissingData())
	}
	if err := c.SetProportionMissingData(1.5); !IsKind(err, KindGeneral) {
		t.Errorf("Expected general error, got %v", err)
	}
}

func TestDrawsAreCopied(t *testing.T) {
	c := mustParse(t, coalescentArgs)
	draws := c.Draws()
	draws[0].Theta = -1
	if c.Draws()[0].Theta == -1 {
		t.Errorf("Expected Draws to return a copy")
	}
}

func TestUndrawnParameterIsAnError(t *testing.T) {
	c := mustParse(t, "-rC -l5 -i4 -b4,8 -s -t9 -u0,1e-6 -g")
	if _, err := c.BottleneckLength(0); !IsKind(err, KindArgument) {
		t.Errorf("Expected error for the missing duration, got %v", err)
	}

	c.bottleneckLength = some(Range[int]{Min: 1, Max: 2})
	_, err := c.BottleneckLength(0)
	if !IsKind(err, KindArgument) {
		t.Fatalf("Expected error for an undrawn parameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "bottleneck length was not drawn for single-generation mode") {
		t.Errorf("Unexpected message: %v", err)
	}
}

func TestFlushKeepsScalars(t *testing.T) {
	c := mustParse(t, coalescentArgs)
	c.Flush()

	if len(c.Draws()) != 0 {
		t.Errorf("Expected draws to be released")
	}
	if _, err := c.ThetaMin(); err == nil {
		t.Errorf("Expected theta range to be released")
	}
	if n, err := c.NLoci(); err != nil || n != 50 {
		t.Errorf("Expected loci to survive, got %d (%v)", n, err)
	}
	if c.Mode() != ModeCoalescentExample {
		t.Errorf("Expected mode to survive, got %s", c.Mode())
	}
}

func TestConfigString(t *testing.T) {
	c := mustParse(t, "-rGFSR -l10 -i20 -s -o1.0 -w")
	s := c.String()
	for _, want := range []string{
		"Mode: raw-stats",
		"Random source: GFSR",
		"Loci: 10 (allocated 10)",
		"Bottleneck (halved): 1-1",
		"Bottleneck duration: unused",
		"Draws: 1",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in:\n%s", want, s)
		}
	}
}
