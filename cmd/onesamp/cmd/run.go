package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onesamp/onesamp/pkg/arguments"
	"github.com/onesamp/onesamp/pkg/logger"
	"github.com/onesamp/onesamp/pkg/report"
)

const envPrefix = "ONESAMP"

// runOptions are the binary's own settings, separate from the ONeSAMP
// parameters.
type runOptions struct {
	LogLevel  string
	NoColor   bool
	Seed      uint64
	Report    string
	ShowDraws bool
}

func newAmbientFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("onesamp", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.Bool("no-color", false, "disable colored output")
	fs.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	fs.String("report", "", "write a YAML run report to this path")
	fs.Bool("show-draws", false, "print the drawn parameters of every iteration")
	return fs
}

// splitArgs separates long options from ONeSAMP's single-hyphen tokens. A
// long option without "=" that takes a value consumes the next argument.
func splitArgs(fs *pflag.FlagSet, args []string) (ambient, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
			continue
		}
		ambient = append(ambient, arg)

		name := strings.TrimPrefix(arg, "--")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && f.NoOptDefVal == "" && i+1 < len(args) {
			i++
			ambient = append(ambient, args[i])
		}
	}
	return ambient, rest
}

// loadOptions parses the long options and layers ONESAMP_* environment
// variables underneath them.
func loadOptions(args []string) (runOptions, []string, error) {
	fs := newAmbientFlags()
	ambient, rest := splitArgs(fs, args)
	if err := fs.Parse(ambient); err != nil {
		return runOptions{}, nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return runOptions{}, nil, fmt.Errorf("failed to bind options: %w", err)
	}

	return runOptions{
		LogLevel:  v.GetString("log-level"),
		NoColor:   v.GetBool("no-color"),
		Seed:      v.GetUint64("seed"),
		Report:    v.GetString("report"),
		ShowDraws: v.GetBool("show-draws"),
	}, rest, nil
}

func programName() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return os.Args[0]
	}
	return "onesamp"
}

func runOneSamp(cmd *cobra.Command, args []string) error {
	opts, rest, err := loadOptions(args)
	if errors.Is(err, pflag.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return fmt.Errorf("invalid option: %w", err)
	}

	logger.SetLevel(logger.ParseLevel(opts.LogLevel))
	if opts.NoColor {
		logger.SetNoColor(true)
		color.NoColor = true
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	runID := uuid.NewString()
	log := logger.WithField("run", runID[:8])
	log.Debugf("%d ONeSAMP arguments", len(rest))
	logger.Configf("Random seed: %d", seed)

	argv := append([]string{programName()}, rest...)
	c, err := arguments.Parse(argv, arguments.WithSeed(seed), arguments.WithLogger(log))
	if err != nil {
		return err
	}

	printSummary(c)
	logger.Success("Configuration is valid")

	if opts.ShowDraws {
		printDraws(cmd.OutOrStdout(), c)
	}

	if opts.Report != "" {
		r := report.New(runID, c, seed)
		if err := r.Save(opts.Report); err != nil {
			return err
		}
		logger.Successf("Run report saved to: %s", opts.Report)
	}

	return nil
}

func printSummary(c *arguments.Config) {
	logger.LogSection("ONeSAMP configuration")
	logger.LogKeyValue("Mode", c.Mode())
	if kind, err := c.RandomSource(); err == nil {
		logger.LogKeyValue("Random source", kind)
	}
	if n, err := c.NLoci(); err == nil {
		logger.LogKeyValue("Loci", n)
	}
	if n, err := c.InputIndividuals(); err == nil {
		logger.LogKeyValue("Input individuals", n)
	}
	if kind, err := c.LocusKind(); err == nil {
		logger.LogKeyValue("Locus kind", kind)
	}
	if motifs, err := c.MotifLengths(); err == nil && len(motifs) > 0 {
		logger.LogKeyValue("Motif lengths", motifs)
	}
	if c.Mode() == arguments.ModeSyntaxCheck {
		return
	}
	logger.LogKeyValue("Iterations", len(c.Draws()))

	logger.LogSubSection("Ranges")
	if lo, err := c.BottleneckMin(); err == nil {
		hi, _ := c.BottleneckMax()
		logger.LogKeyValue("Bottleneck (halved)", fmt.Sprintf("%d-%d", lo, hi))
	}
	if lo, err := c.BottleneckLengthMin(); err == nil {
		hi, _ := c.BottleneckLengthMax()
		logger.LogKeyValue("Bottleneck duration", fmt.Sprintf("%d-%d", lo, hi))
	}
	if lo, err := c.MutationRateMin(); err == nil {
		hi, _ := c.MutationRateMax()
		logger.LogKeyValue("Mutation rate", fmt.Sprintf("%g-%g", lo, hi))
	}
	if lo, err := c.ThetaMin(); err == nil {
		hi, _ := c.ThetaMax()
		logger.LogKeyValue("Theta", fmt.Sprintf("%g-%g", lo, hi))
	}

	var drawn []string
	for _, p := range []arguments.Param{
		arguments.ParamBottleneckSize,
		arguments.ParamBottleneckLength,
		arguments.ParamTheta,
		arguments.ParamMutationRate,
	} {
		if c.Drawn(p) {
			drawn = append(drawn, p.String())
		}
	}
	logger.LogList("Drawn parameters:", drawn)
}

// printDraws writes one row per iteration with a column per drawn
// parameter.
func printDraws(w io.Writer, c *arguments.Config) {
	columns := []struct {
		param  arguments.Param
		header string
		cell   func(arguments.Iteration) string
	}{
		{arguments.ParamBottleneckSize, "BOTTLENECK", func(it arguments.Iteration) string { return strconv.Itoa(it.BottleneckSize) }},
		{arguments.ParamBottleneckLength, "DURATION", func(it arguments.Iteration) string { return strconv.Itoa(it.BottleneckLength) }},
		{arguments.ParamTheta, "THETA", func(it arguments.Iteration) string { return strconv.FormatFloat(it.Theta, 'g', -1, 64) }},
		{arguments.ParamMutationRate, "MUTATION RATE", func(it arguments.Iteration) string { return strconv.FormatFloat(it.MutationRate, 'g', -1, 64) }},
	}

	headers := []string{"#"}
	for _, col := range columns {
		if c.Drawn(col.param) {
			headers = append(headers, col.header)
		}
	}

	table := logger.NewTable(headers...)
	for i, it := range c.Draws() {
		row := []string{strconv.Itoa(i)}
		for _, col := range columns {
			if c.Drawn(col.param) {
				row = append(row, col.cell(it))
			}
		}
		table.AddRow(row...)
	}
	if table.Len() > 0 {
		table.Print(w)
	}
}
