package arguments

import (
	"fmt"
	"strings"
)

// Mode is the operation a run performs.
type Mode uint8

const (
	// ModeFull is the default when no operation flag is given. A run in
	// this mode is rejected with the missing-operation error.
	ModeFull Mode = iota
	ModeSyntaxCheck
	ModeCoalescentExample
	ModeRawStats
	ModeSingleGeneration
	ModeExamplePopulation
)

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	if d, ok := descriptors[m]; ok {
		return d.Name
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Param is a set of per-iteration parameters.
type Param uint8

const (
	ParamBottleneckSize Param = 1 << iota
	ParamBottleneckLength
	ParamTheta
	ParamMutationRate
)

var paramNames = []struct {
	p    Param
	name string
}{
	{ParamBottleneckSize, "bottleneck size"},
	{ParamBottleneckLength, "bottleneck length"},
	{ParamTheta, "theta"},
	{ParamMutationRate, "mutation rate"},
}

func (p Param) String() string {
	var names []string
	for _, pn := range paramNames {
		if p&pn.p != 0 {
			names = append(names, pn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Check is one validation a mode requires before the run may proceed.
type Check struct {
	Name string
	Run  func(c *Config) error
}

// Descriptor declares what a mode consumes.
type Descriptor struct {
	Mode        Mode
	Flag        byte
	Name        string
	Description string

	// SkipResolve stops resolution before any sampling or validation.
	SkipResolve bool
	// SingleIteration forces iterations to 1.
	SingleIteration bool
	// RawSample makes the bottleneck degenerate, marks its duration unused
	// and keeps the final sample the size of the input.
	RawSample bool

	// Draws lists the parameters sampled for every iteration.
	Draws Param
	// Validate runs in order after sampling; the first failure wins.
	Validate []Check
}

var (
	checkLocusKind = Check{"locus kind", func(c *Config) error { _, err := c.LocusKind(); return err }}
	checkIters     = Check{"iterations", func(c *Config) error { _, err := c.Iterations(); return err }}
	checkLoci      = Check{"loci", func(c *Config) error { _, err := c.NLoci(); return err }}
	checkInput     = Check{"input individuals", func(c *Config) error { _, err := c.InputIndividuals(); return err }}
	checkOmit      = Check{"omit threshold", func(c *Config) error { _, err := c.OmitLocusThreshold(); return err }}
	checkSize      = Check{"bottleneck size", func(c *Config) error { _, err := c.Bottleneck(0); return err }}
	checkLength    = Check{"bottleneck length", func(c *Config) error { _, err := c.BottleneckLength(0); return err }}
	checkMutation  = Check{"mutation rate", func(c *Config) error { _, err := c.MutationRate(0); return err }}
	checkTheta     = Check{"theta", func(c *Config) error { _, err := c.Theta(0); return err }}
)

var simulationChecks = []Check{
	checkLocusKind, checkIters, checkLoci, checkInput, checkOmit,
	checkSize, checkLength, checkMutation, checkTheta,
}

var descriptors = map[Mode]Descriptor{
	ModeSyntaxCheck: {
		Mode:        ModeSyntaxCheck,
		Flag:        'x',
		Name:        "syntax-check",
		Description: "check the syntax of the input file",
		SkipResolve: true,
	},
	ModeCoalescentExample: {
		Mode:        ModeCoalescentExample,
		Flag:        'e',
		Name:        "coalescent-example",
		Description: "compute stats of a coalescent sample after a few generations",
		Draws:       ParamBottleneckSize | ParamBottleneckLength | ParamTheta | ParamMutationRate,
		Validate:    simulationChecks,
	},
	ModeRawStats: {
		Mode:            ModeRawStats,
		Flag:            'w',
		Name:            "raw-stats",
		Description:     "compute statistics of the input sample",
		SingleIteration: true,
		RawSample:       true,
		Draws:           ParamBottleneckSize,
		Validate:        []Check{checkLocusKind, checkLoci, checkInput, checkOmit},
	},
	ModeSingleGeneration: {
		Mode:            ModeSingleGeneration,
		Flag:            'g',
		Name:            "single-generation",
		Description:     "simulate a single generation from the input population",
		SingleIteration: true,
		Draws:           ParamBottleneckSize | ParamMutationRate,
		Validate:        []Check{checkLoci, checkInput, checkMutation, checkSize, checkLocusKind},
	},
	ModeExamplePopulation: {
		Mode:        ModeExamplePopulation,
		Flag:        'p',
		Name:        "example-population",
		Description: "dump an example population with known effective population size",
		Draws:       ParamBottleneckSize | ParamBottleneckLength | ParamTheta | ParamMutationRate,
		Validate:    simulationChecks,
	},
}

// Describe returns the descriptor of a selectable mode.
func Describe(m Mode) (Descriptor, bool) {
	d, ok := descriptors[m]
	return d, ok
}

// Descriptors returns every selectable mode in flag order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(modeGroup))
	for i := range modeGroup {
		m, _ := modeForFlag(modeGroup[i])
		out = append(out, descriptors[m])
	}
	return out
}

func modeForFlag(letter byte) (Mode, bool) {
	for m, d := range descriptors {
		if d.Flag == letter {
			return m, true
		}
	}
	return ModeFull, false
}
