package arguments

import (
	"github.com/onesamp/onesamp/pkg/random"
)

// Quanta used when sampling each parameter.
const (
	integerQuantum = 1
	realQuantum    = 1e-8
)

// resolve applies the selected mode's descriptor: it forces the mode's
// overrides, draws the per-iteration parameters and runs the mode's
// validations. newGenerator is called once the random source is known.
func (c *Config) resolve(newGenerator func(random.Kind) *random.Generator) error {
	log := c.log.WithPrefix("resolve")

	if c.mode == ModeFull {
		return c.generalError(0, "%s: missing an operation to perform on the input file: -x (syntax check operation), -w (compute statistics of input sample), -g (simulate a single generation from an input population and display to standard out), -p (dump out an example population with known effective population size), or -e (compute stats of coalescent sample after a few generations have passed)")
	}

	d := descriptors[c.mode]
	if d.SkipResolve {
		log.Debugf("%s mode: no sampling", d.Name)
		return nil
	}

	kind, err := c.RandomSource()
	if err != nil {
		return err
	}
	gen := newGenerator(kind)
	log.Debugf("random source %s", gen.Kind())

	if d.SingleIteration {
		c.iterations = some(1)
	}
	if d.RawSample {
		c.finalIndividuals = c.inputIndividuals
		c.bottleneck = some(Range[int]{Min: 1, Max: 1})
		c.bottleneckLength = optional[Range[int]]{state: unused}
	}

	if err := c.drawAll(gen, d.Draws); err != nil {
		return err
	}

	for _, check := range d.Validate {
		if err := check.Run(c); err != nil {
			log.Debugf("%s mode: %s check failed", d.Name, check.Name)
			return err
		}
	}

	log.WithFields(map[string]interface{}{
		"mode":       d.Name,
		"iterations": len(c.draws),
		"source":     kind,
	}).Infof("drew %s", c.drawn)
	return nil
}

// drawAll fills one Iteration per repetition. Each parameter is drawn as a
// whole column before the next one starts.
func (c *Config) drawAll(gen *random.Generator, params Param) error {
	n, err := c.Iterations()
	if err != nil {
		return err
	}
	draws := make([]Iteration, n)

	if params&ParamBottleneckSize != 0 {
		r, err := c.bottleneckRange()
		if err != nil {
			return err
		}
		for i := range draws {
			draws[i].BottleneckSize = gen.QuantizedInt(r.Min, r.Max, integerQuantum)
		}
	}

	if params&ParamBottleneckLength != 0 {
		r, err := c.bottleneckLengthRange()
		if err != nil {
			return err
		}
		for i := range draws {
			draws[i].BottleneckLength = gen.QuantizedInt(r.Min, r.Max, integerQuantum)
		}
	}

	if params&ParamTheta != 0 {
		r, err := c.thetaRange()
		if err != nil {
			return err
		}
		for i := range draws {
			draws[i].Theta = gen.Quantized(r.Min, r.Max, realQuantum)
		}
	}

	if params&ParamMutationRate != 0 {
		r, err := c.mutationRateRange()
		if err != nil {
			return err
		}
		for i := range draws {
			draws[i].MutationRate = gen.Quantized(r.Min, r.Max, realQuantum)
		}
	}

	c.draws = draws
	c.drawn = params
	return nil
}
