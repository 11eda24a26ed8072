package arguments

import (
	"fmt"
	"strings"

	"github.com/onesamp/onesamp/pkg/logger"
	"github.com/onesamp/onesamp/pkg/random"
)

// Range is an ordered pair of parameter bounds.
type Range[T int | float64] struct {
	Min T `yaml:"min"`
	Max T `yaml:"max"`
}

// state tracks whether a field was supplied.
type state uint8

const (
	absent state = iota
	present
	// unused marks a field the selected mode has no use for.
	unused
)

type optional[T any] struct {
	value T
	state state
}

func some[T any](v T) optional[T] {
	return optional[T]{value: v, state: present}
}

func (o optional[T]) get() (T, bool) {
	return o.value, o.state == present
}

// LocusKind says how input loci are encoded.
type LocusKind uint8

const (
	SNP LocusKind = iota
	Microsatellite
)

func (k LocusKind) String() string {
	if k == Microsatellite {
		return "microsatellite"
	}
	return "SNP"
}

// Iteration holds the parameters drawn for one simulated scenario. Fields
// the mode does not draw stay zero.
type Iteration struct {
	BottleneckSize   int     `yaml:"bottleneck_size"`
	BottleneckLength int     `yaml:"bottleneck_length"`
	Theta            float64 `yaml:"theta"`
	MutationRate     float64 `yaml:"mutation_rate"`
}

// validMotifs are the supported microsatellite repeat unit lengths.
var validMotifs = map[int]bool{2: true, 3: true, 4: true, 6: true}

// Config is the parsed and resolved ONeSAMP run configuration.
//
// It is populated by Parse. Afterwards only the setters may change it, in
// the order the ingestion stage learns things: SetNLoci and
// SetInputIndividuals once loci and individuals are filtered, then
// SetMotifLengths and SetProportionMissingData. Ranges and draws are
// read-only once Parse returns.
type Config struct {
	programName string

	randomSource     optional[random.Kind]
	nLoci            optional[int]
	nLociAllocation  optional[int]
	inputIndividuals optional[int]
	inputAllocation  optional[int]
	finalIndividuals optional[int]

	// bottleneck is stored halved.
	bottleneck       optional[Range[int]]
	bottleneckLength optional[Range[int]]
	mutationRate     optional[Range[float64]]
	theta            optional[Range[float64]]

	locusKind          optional[LocusKind]
	iterations         optional[int]
	minAlleleFrequency optional[float64]
	omitThreshold      optional[float64]
	fillInAbsentData   bool
	mode               Mode

	motifLengths []int
	motifInvalid bool

	draws []Iteration
	drawn Param

	proportionMissingData float64

	log logger.Logger
}

// New returns a configuration with every field unset.
func New() *Config {
	c := &Config{}
	c.Reset()
	return c
}

// Reset restores every field to its unset state. Calling it twice is the
// same as calling it once.
func (c *Config) Reset() {
	log := c.log
	*c = Config{}
	if log == nil {
		log = logger.Default()
	}
	c.log = log
}

// Flush releases the draws, ranges and motif lengths. The scalar fields and
// the mode survive so the caller can still report on the run.
func (c *Config) Flush() {
	c.draws = nil
	c.drawn = 0
	c.bottleneck = optional[Range[int]]{}
	c.bottleneckLength = optional[Range[int]]{}
	c.mutationRate = optional[Range[float64]]{}
	c.theta = optional[Range[float64]]{}
	c.motifLengths = nil
	c.motifInvalid = false
}

func (c *Config) argumentError(flag byte, template string, args ...interface{}) *Error {
	return &Error{
		Kind:     KindArgument,
		Flag:     flag,
		Program:  c.programName,
		Template: template,
		Args:     args,
	}
}

func (c *Config) generalError(flag byte, template string, args ...interface{}) *Error {
	return &Error{
		Kind:     KindGeneral,
		Flag:     flag,
		Program:  c.programName,
		Template: template,
		Args:     args,
	}
}

// ProgramName returns argv[0].
func (c *Config) ProgramName() string {
	return c.programName
}

// Mode returns the selected operation.
func (c *Config) Mode() Mode {
	return c.mode
}

// FillInAbsentData reports whether -a was given.
func (c *Config) FillInAbsentData() bool {
	return c.fillInAbsentData
}

// RandomSource returns the -r selection.
func (c *Config) RandomSource() (random.Kind, error) {
	v, ok := c.randomSource.get()
	if !ok {
		return 0, c.argumentError('r', "%s: argument -r, flag to determine source of random numbers, must be -rGFSR (for GFSR values), -rRESET (for GFSR values with a reset of the GFSR register), or -rC (for values from the system random number generator)")
	}
	return v, nil
}

// NLoci returns the current number of loci.
func (c *Config) NLoci() (int, error) {
	v, ok := c.nLoci.get()
	if !ok || v <= 0 {
		return 0, c.argumentError('l', "%s: argument -l, num of unlinked polymorphic loci, must be a positive integer.")
	}
	return v, nil
}

// SetNLoci records the locus count after loci were filtered out. It cannot
// grow past the count given with -l.
func (c *Config) SetNLoci(n int) error {
	alloc, ok := c.nLociAllocation.get()
	if !ok {
		return c.argumentError('l', "%s: cannot set the number of loci before -l was parsed")
	}
	if n <= 0 || n > alloc {
		return c.argumentError('l', "%s: number of loci %d must be between 1 and %d", n, alloc)
	}
	c.nLoci = some(n)
	return nil
}

// LociAllocation returns the locus count given with -l, or 0 if absent.
func (c *Config) LociAllocation() int {
	v, _ := c.nLociAllocation.get()
	return v
}

// InputIndividuals returns the current input sample size.
func (c *Config) InputIndividuals() (int, error) {
	v, ok := c.inputIndividuals.get()
	if !ok || v <= 0 {
		return 0, c.argumentError('i', "%s: argument -i, num of input samples, must be a positive integer.")
	}
	return v, nil
}

// SetInputIndividuals records the sample size after individuals were
// filtered out. The final individual count follows it.
func (c *Config) SetInputIndividuals(n int) error {
	alloc, ok := c.inputAllocation.get()
	if !ok {
		return c.argumentError('i', "%s: cannot set the number of individuals before -i was parsed")
	}
	if n <= 0 || n > alloc {
		return c.argumentError('i', "%s: number of individuals %d must be between 1 and %d", n, alloc)
	}
	c.inputIndividuals = some(n)
	c.finalIndividuals = some(n)
	return nil
}

// InputIndividualsAllocation returns the sample size given with -i, or 0 if
// absent.
func (c *Config) InputIndividualsAllocation() int {
	v, _ := c.inputAllocation.get()
	return v
}

// FinalIndividuals returns the size of the simulated output sample.
func (c *Config) FinalIndividuals() (int, error) {
	v, ok := c.finalIndividuals.get()
	if !ok || v <= 0 {
		return 0, c.argumentError('i', "%s: argument -i, num of input samples, must be a positive integer.")
	}
	return v, nil
}

func (c *Config) bottleneckRange() (Range[int], error) {
	r, ok := c.bottleneck.get()
	if !ok {
		return r, c.argumentError('b', "%s: argument -b, num of individuals in bottleneck generation, must be a positive even integer")
	}
	return r, nil
}

// BottleneckMin returns the lower bound of the halved bottleneck range.
func (c *Config) BottleneckMin() (int, error) {
	r, err := c.bottleneckRange()
	return r.Min, err
}

// BottleneckMax returns the upper bound of the halved bottleneck range.
func (c *Config) BottleneckMax() (int, error) {
	r, err := c.bottleneckRange()
	return r.Max, err
}

// Bottleneck returns the bottleneck size drawn for sample.
func (c *Config) Bottleneck(sample int) (int, error) {
	if _, err := c.bottleneckRange(); err != nil {
		return 0, err
	}
	it, err := c.iteration(ParamBottleneckSize, sample)
	return it.BottleneckSize, err
}

func (c *Config) bottleneckLengthRange() (Range[int], error) {
	r, ok := c.bottleneckLength.get()
	if !ok || r.Min < 0 || r.Max < 0 {
		return r, c.argumentError('d', "%s: argument -d, duration of bottleneck generations, must be a nonnegative integer")
	}
	return r, nil
}

// BottleneckLengthMin returns the shortest bottleneck duration.
func (c *Config) BottleneckLengthMin() (int, error) {
	r, err := c.bottleneckLengthRange()
	return r.Min, err
}

// BottleneckLengthMax returns the longest bottleneck duration.
func (c *Config) BottleneckLengthMax() (int, error) {
	r, err := c.bottleneckLengthRange()
	return r.Max, err
}

// BottleneckLength returns the bottleneck duration drawn for sample.
func (c *Config) BottleneckLength(sample int) (int, error) {
	if _, err := c.bottleneckLengthRange(); err != nil {
		return 0, err
	}
	it, err := c.iteration(ParamBottleneckLength, sample)
	return it.BottleneckLength, err
}

func (c *Config) mutationRateRange() (Range[float64], error) {
	r, ok := c.mutationRate.get()
	if !ok || r.Min < 0 || r.Max < 0 {
		return r, c.argumentError('u', "%s: argument -u, mutation rate during simulation, must be a nonnegative real number")
	}
	return r, nil
}

// MutationRateMin returns the lower mutation rate bound.
func (c *Config) MutationRateMin() (float64, error) {
	r, err := c.mutationRateRange()
	return r.Min, err
}

// MutationRateMax returns the upper mutation rate bound.
func (c *Config) MutationRateMax() (float64, error) {
	r, err := c.mutationRateRange()
	return r.Max, err
}

// MutationRate returns the mutation rate drawn for sample.
func (c *Config) MutationRate(sample int) (float64, error) {
	if _, err := c.mutationRateRange(); err != nil {
		return 0, err
	}
	it, err := c.iteration(ParamMutationRate, sample)
	return it.MutationRate, err
}

// thetaRange validates -v. When it is unusable the mutation-rate and
// bottleneck ranges are checked first so that the θ error can carry a
// recommendation derived from them.
func (c *Config) thetaRange() (Range[float64], error) {
	r, ok := c.theta.get()
	if ok && r.Min > 0 && r.Max > 0 {
		return r, nil
	}

	mu, err := c.mutationRateRange()
	if err != nil {
		return r, err
	}
	if _, err := c.bottleneckRange(); err != nil {
		return r, err
	}

	rec := RecommendedTheta(mu)
	e := c.argumentError('v', "%s: argument -v, theta value, must be a positive real number. Recommended input based on choices of mutation rate and bottleneck min and max: -v%e,%e", rec.Min, rec.Max)
	e.Recommended = &rec
	return r, e
}

// RecommendedTheta derives a θ range from a mutation-rate range.
func RecommendedTheta(mu Range[float64]) Range[float64] {
	return Range[float64]{Min: 4000 * mu.Min, Max: 400000 * mu.Max}
}

// ThetaMin returns the lower θ bound.
func (c *Config) ThetaMin() (float64, error) {
	r, err := c.thetaRange()
	return r.Min, err
}

// ThetaMax returns the upper θ bound.
func (c *Config) ThetaMax() (float64, error) {
	r, err := c.thetaRange()
	return r.Max, err
}

// Theta returns the θ drawn for sample.
func (c *Config) Theta(sample int) (float64, error) {
	if _, err := c.thetaRange(); err != nil {
		return 0, err
	}
	it, err := c.iteration(ParamTheta, sample)
	return it.Theta, err
}

// LocusKind returns whether the input holds SNPs or microsatellites.
func (c *Config) LocusKind() (LocusKind, error) {
	v, ok := c.locusKind.get()
	if !ok {
		return 0, c.argumentError('s', "%s: argument -s or -m, SNPs or microsatellites loci, not specified.")
	}
	return v, nil
}

// Iterations returns the number of simulated scenarios.
func (c *Config) Iterations() (int, error) {
	v, ok := c.iterations.get()
	if !ok || v <= 0 {
		return 0, c.argumentError('t', "%s: argument -t, number of repetitions, must be a positive integer.")
	}
	return v, nil
}

// MinAlleleFrequency returns the -f value.
func (c *Config) MinAlleleFrequency() (float64, error) {
	v, ok := c.minAlleleFrequency.get()
	if !ok || v < 0 || v > 0.5 {
		return 0, c.argumentError('f', "%s: argument -f, minimum proportion of mutated alleles, is either missing or not a floating point number between 0 and 0.5")
	}
	return v, nil
}

// OmitLocusThreshold returns the -o value.
func (c *Config) OmitLocusThreshold() (float64, error) {
	v, ok := c.omitThreshold.get()
	if !ok || v < 0 || v > 1 {
		return 0, c.argumentError('o', "%s: argument -o, minimum proportion of individuals with completely specified genotypes for loci to be included in computation, is not specified or not between 0 and 1")
	}
	return v, nil
}

// MotifLengths returns a copy of the microsatellite motif lengths. SNP runs
// get nil.
func (c *Config) MotifLengths() ([]int, error) {
	if c.motifInvalid {
		return nil, c.argumentError('m', "%s: argument -m, microsatellite motif lengths, must be a comma separated list of 2, 3, 4 or 6")
	}
	if len(c.motifLengths) == 0 {
		if kind, ok := c.locusKind.get(); ok && kind == Microsatellite {
			return nil, c.argumentError('m', "%s: argument -m, microsatellite motif lengths, were not supplied")
		}
		return nil, nil
	}
	return append([]int(nil), c.motifLengths...), nil
}

// SetMotifLengths replaces the motif lengths, typically once the ingestion
// stage knows one per locus.
func (c *Config) SetMotifLengths(lengths []int) error {
	for _, m := range lengths {
		if !validMotifs[m] {
			return c.argumentError('m', "%s: motif length %d is not one of 2, 3, 4 or 6", m)
		}
	}
	c.motifLengths = append([]int(nil), lengths...)
	c.motifInvalid = false
	return nil
}

// ProportionMissingData returns the share of absent genotype data.
func (c *Config) ProportionMissingData() float64 {
	return c.proportionMissingData
}

// SetProportionMissingData records the share of absent genotype data.
func (c *Config) SetProportionMissingData(v float64) error {
	if v < 0 || v > 1 {
		return c.generalError(0, "%s: proportion of missing data %g must be between 0 and 1", v)
	}
	c.proportionMissingData = v
	return nil
}

// Draws returns a copy of the per-iteration parameters.
func (c *Config) Draws() []Iteration {
	return append([]Iteration(nil), c.draws...)
}

// Drawn reports whether the parameter was drawn for this run.
func (c *Config) Drawn(p Param) bool {
	return c.drawn&p != 0
}

func (c *Config) iteration(p Param, sample int) (Iteration, error) {
	if !c.Drawn(p) {
		return Iteration{}, c.argumentError(0, "%s: %s was not drawn for %s mode", p, c.mode)
	}
	if sample < 0 || sample >= len(c.draws) {
		return Iteration{}, c.argumentError(0, "%s: sample %d is outside the %d drawn iterations", sample, len(c.draws))
	}
	return c.draws[sample], nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ONeSAMP configuration (%s):\n", c.programName)
	fmt.Fprintf(&b, "  Mode: %s\n", c.mode)
	if v, ok := c.randomSource.get(); ok {
		fmt.Fprintf(&b, "  Random source: %s\n", v)
	}
	if v, ok := c.nLoci.get(); ok {
		fmt.Fprintf(&b, "  Loci: %d (allocated %d)\n", v, c.LociAllocation())
	}
	if v, ok := c.inputIndividuals.get(); ok {
		fmt.Fprintf(&b, "  Input individuals: %d (allocated %d)\n", v, c.InputIndividualsAllocation())
	}
	if v, ok := c.locusKind.get(); ok {
		fmt.Fprintf(&b, "  Locus kind: %s\n", v)
	}
	if len(c.motifLengths) > 0 {
		fmt.Fprintf(&b, "  Motif lengths: %v\n", c.motifLengths)
	}
	if v, ok := c.iterations.get(); ok {
		fmt.Fprintf(&b, "  Iterations: %d\n", v)
	}
	if r, ok := c.bottleneck.get(); ok {
		fmt.Fprintf(&b, "  Bottleneck (halved): %d-%d\n", r.Min, r.Max)
	}
	switch c.bottleneckLength.state {
	case present:
		fmt.Fprintf(&b, "  Bottleneck duration: %d-%d\n", c.bottleneckLength.value.Min, c.bottleneckLength.value.Max)
	case unused:
		fmt.Fprintf(&b, "  Bottleneck duration: unused\n")
	}
	if r, ok := c.mutationRate.get(); ok {
		fmt.Fprintf(&b, "  Mutation rate: %g-%g\n", r.Min, r.Max)
	}
	if r, ok := c.theta.get(); ok {
		fmt.Fprintf(&b, "  Theta: %g-%g\n", r.Min, r.Max)
	}
	if v, ok := c.minAlleleFrequency.get(); ok {
		fmt.Fprintf(&b, "  Min allele frequency: %g\n", v)
	}
	if v, ok := c.omitThreshold.get(); ok {
		fmt.Fprintf(&b, "  Omit threshold: %g\n", v)
	}
	fmt.Fprintf(&b, "  Fill in absent data: %t\n", c.fillInAbsentData)
	fmt.Fprintf(&b, "  Draws: %d", len(c.draws))
	return b.String()
}
