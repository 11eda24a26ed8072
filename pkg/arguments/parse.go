package arguments

import (
	"strconv"
	"strings"

	"github.com/onesamp/onesamp/pkg/logger"
	"github.com/onesamp/onesamp/pkg/random"
)

// Option customizes Parse.
type Option func(*options)

type options struct {
	seed   uint64
	seeded bool
	log    logger.Logger
}

// WithSeed seeds the random source. Without it the seed comes from the
// clock. GFSRReset ignores the seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger sets the logger used while parsing and resolving.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Parse builds a configuration from argv, where argv[0] is the program name.
func Parse(argv []string, opts ...Option) (*Config, error) {
	c := New()
	if err := c.Parse(argv, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse resets c, reads every token of argv and resolves the selected mode.
func (c *Config) Parse(argv []string, opts ...Option) error {
	o := options{log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	c.log = o.log
	c.Reset()

	if len(argv) > 0 {
		c.programName = argv[0]
	}

	seen := make(map[string]bool)
	for i := 1; i < len(argv); i++ {
		if err := c.parseToken(i, argv[i], seen); err != nil {
			return err
		}
	}

	c.scanMotifLengths(argv)

	return c.resolve(func(kind random.Kind) *random.Generator {
		if !o.seeded {
			return random.NewTimeSeed(kind)
		}
		return random.New(kind, o.seed)
	})
}

func (c *Config) parseToken(row int, tok string, seen map[string]bool) error {
	log := c.log.WithPrefix("parse")

	if len(tok) == 0 || tok[0] != '-' {
		return c.generalError(0, "%s: arguments to OneSamp must start with hyphens, got %q", tok)
	}
	if len(tok) < 2 {
		return c.generalError(0, "%s: unknown flag %q passed in to OneSamp", tok)
	}

	letter := tok[1]
	flag, ok := LookupFlag(letter)
	if !ok {
		return c.generalError(letter, "%s: unknown flag %q passed in to OneSamp", tok)
	}
	if seen[flag.key()] {
		return c.generalError(letter, flag.duplicateTemplate())
	}
	seen[flag.key()] = true

	log.Debugf("token %d: %s (%s)", row, tok, flag.Name)

	switch letter {
	case 'r':
		keyword, err := Keyword(tok, random.DefaultRegistry.Keywords())
		if err != nil {
			e := err.(*Error)
			e.Row = row
			e.Program = c.programName
			return e
		}
		kind, err := random.DefaultRegistry.Lookup(keyword)
		if err != nil {
			return c.generalError(letter, "%s: %v", err)
		}
		c.randomSource = some(kind)

	case 'l':
		n := PosInt(tok)
		c.nLoci = some(n)
		c.nLociAllocation = some(n)

	case 'i':
		n := PosInt(tok)
		c.inputIndividuals = some(n)
		c.inputAllocation = some(n)
		c.finalIndividuals = some(n)

	case 'b':
		r := PosIntPair(tok)
		if !evenAtLeastTwo(r.Min) || !evenAtLeastTwo(r.Max) {
			return c.argumentError(letter, "%s: argument -b, num of individuals in bottleneck generation, must be a positive even integer at least 2")
		}
		c.bottleneck = some(Range[int]{Min: r.Min / 2, Max: r.Max / 2})

	case 'd':
		c.bottleneckLength = some(PosIntPair(tok))

	case 's':
		c.locusKind = some(SNP)

	case 'm':
		c.locusKind = some(Microsatellite)

	case 't':
		c.iterations = some(PosInt(tok))

	case 'u':
		c.mutationRate = some(PosDoublePair(tok))

	case 'v':
		c.theta = some(PosDoublePair(tok))

	case 'f':
		c.minAlleleFrequency = some(PosDouble(tok))

	case 'o':
		c.omitThreshold = some(PosDouble(tok))

	case 'a':
		c.fillInAbsentData = true

	case 'x', 'e', 'w', 'g', 'p':
		c.mode, _ = modeForFlag(letter)
	}

	return nil
}

func evenAtLeastTwo(n int) bool {
	return n >= 2 && (n&1) == 0
}

// scanMotifLengths reads the motif list carried by -m. It runs after the
// token loop and leaves the locus kind alone.
func (c *Config) scanMotifLengths(argv []string) {
	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		if len(tok) < 2 || tok[0] != '-' || tok[1] != 'm' {
			continue
		}

		lengths, ok := parseMotifList(payload(tok))
		if !ok {
			c.log.Warnf("ignoring malformed motif lengths in %q", tok)
			continue
		}
		for _, m := range lengths {
			if !validMotifs[m] {
				c.motifInvalid = true
			}
		}
		c.motifLengths = lengths
	}
}

// parseMotifList splits "2,3,4" into integers. An empty payload yields no
// lengths; any non-integer element makes the whole list malformed.
func parseMotifList(p string) ([]int, bool) {
	if p == "" {
		return nil, true
	}
	parts := strings.Split(p, ",")
	lengths := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		lengths = append(lengths, n)
	}
	return lengths, true
}
