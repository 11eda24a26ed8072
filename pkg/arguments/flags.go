package arguments

import (
	"strings"
)

// Flag describes one single-letter command line flag.
type Flag struct {
	Letter      byte
	Name        string
	Payload     string
	Description string

	// Group lists the letters that share one duplicate-detection slot.
	Group string
}

// key is the duplicate-detection slot of the flag.
func (f Flag) key() string {
	if f.Group != "" {
		return f.Group
	}
	return string(f.Letter)
}

// duplicateTemplate names every letter of the flag's slot.
func (f Flag) duplicateTemplate() string {
	letters := f.key()
	names := make([]string, len(letters))
	for i := range letters {
		names[i] = "-" + string(letters[i])
	}
	return "%s: Duplicate flag: " + strings.Join(names, " and/or ")
}

const (
	locusKindGroup = "ms"
	modeGroup      = "xewgp"
)

// Flags is the complete flag table in documentation order.
var Flags = []Flag{
	{Letter: 'r', Name: "random source", Payload: "C | GFSR | RESET", Description: "source of random numbers; RESET reseeds the GFSR register"},
	{Letter: 'l', Name: "loci", Payload: "positive int", Description: "number of unlinked polymorphic loci"},
	{Letter: 'i', Name: "input individuals", Payload: "positive int", Description: "number of individuals in the input sample"},
	{Letter: 'b', Name: "bottleneck size", Payload: "lo,hi even ints >= 2", Description: "individuals in the bottleneck generation"},
	{Letter: 'd', Name: "bottleneck duration", Payload: "lo,hi nonneg ints", Description: "duration of the bottleneck in generations"},
	{Letter: 's', Name: "SNP loci", Payload: "", Description: "input loci are SNPs", Group: locusKindGroup},
	{Letter: 'm', Name: "microsatellite loci", Payload: "[n1,n2,...] in {2,3,4,6}", Description: "input loci are microsatellites, with optional motif lengths", Group: locusKindGroup},
	{Letter: 't', Name: "iterations", Payload: "positive int", Description: "number of simulated scenarios"},
	{Letter: 'u', Name: "mutation rate", Payload: "lo,hi nonneg reals", Description: "mutation rate during simulation"},
	{Letter: 'v', Name: "theta", Payload: "lo,hi positive reals", Description: "population-scaled mutation rate 4*Ne*mu"},
	{Letter: 'f', Name: "minimum allele frequency", Payload: "real in [0, 0.5]", Description: "minimum proportion of mutated alleles"},
	{Letter: 'o', Name: "omit threshold", Payload: "real in [0, 1]", Description: "minimum proportion of completely genotyped individuals for a locus to be kept"},
	{Letter: 'a', Name: "extrapolate absent data", Payload: "", Description: "fill in absent genotype data"},
	{Letter: 'x', Name: "syntax check", Payload: "", Description: "only check the syntax of the input", Group: modeGroup},
	{Letter: 'e', Name: "coalescent example", Payload: "", Description: "compute stats of a coalescent sample after a few generations", Group: modeGroup},
	{Letter: 'w', Name: "raw statistics", Payload: "", Description: "compute statistics of the input sample", Group: modeGroup},
	{Letter: 'g', Name: "single generation", Payload: "", Description: "simulate a single generation from the input population", Group: modeGroup},
	{Letter: 'p', Name: "example population", Payload: "", Description: "dump an example population with known effective size", Group: modeGroup},
}

var flagsByLetter = func() map[byte]Flag {
	m := make(map[byte]Flag, len(Flags))
	for _, f := range Flags {
		m[f.Letter] = f
	}
	return m
}()

// LookupFlag returns the flag registered for letter.
func LookupFlag(letter byte) (Flag, bool) {
	f, ok := flagsByLetter[letter]
	return f, ok
}
