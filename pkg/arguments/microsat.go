package arguments

import (
	"fmt"
)

// ExamplePopulationMicrosatLength is the allele length every locus starts at
// when dumping an example population.
const ExamplePopulationMicrosatLength = 192

// GenotypeLoader reads the empirical sample's genotypes.
type GenotypeLoader interface {
	InitialGenotype(individual, locus int) (int, int, error)
}

// InitMicrosatA returns the mean allele length at locus across the input
// sample, rounded to the nearest motif unit. Loci past the last one wrap
// around.
func InitMicrosatA(c *Config, loader GenotypeLoader, locus int) (int, error) {
	nLoci, err := c.NLoci()
	if err != nil {
		return 0, err
	}
	if c.mode == ModeExamplePopulation {
		return ExamplePopulationMicrosatLength, nil
	}

	val := locus % nLoci
	motif, err := c.motifAt(val)
	if err != nil {
		return 0, err
	}
	n, err := c.InputIndividuals()
	if err != nil {
		return 0, err
	}

	total := 0
	for i := 0; i < n; i++ {
		a1, a2, err := loader.InitialGenotype(i, val)
		if err != nil {
			return 0, fmt.Errorf("failed to load genotype of individual %d at locus %d: %w", i, val, err)
		}
		total += a1 + a2
	}

	return (total*motif + motif/2) / (2 * motif * n), nil
}

// InitMicrosatB returns a second, distinct starting length: InitMicrosatA
// plus one motif.
func InitMicrosatB(c *Config, loader GenotypeLoader, locus int) (int, error) {
	a, err := InitMicrosatA(c, loader, locus)
	if err != nil {
		return 0, err
	}
	nLoci, err := c.NLoci()
	if err != nil {
		return 0, err
	}
	motif, err := c.motifAt(locus % nLoci)
	if err != nil {
		return 0, err
	}
	return a + motif, nil
}

func (c *Config) motifAt(locus int) (int, error) {
	motifs, err := c.MotifLengths()
	if err != nil {
		return 0, err
	}
	if locus < 0 || locus >= len(motifs) {
		return 0, c.argumentError('m', "%s: argument -m, no microsatellite motif length for locus %d", locus)
	}
	return motifs[locus], nil
}
