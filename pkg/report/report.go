package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/onesamp/onesamp/pkg/arguments"
)

// Report is the YAML summary of one resolved run.
type Report struct {
	RunID       string    `yaml:"run_id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Program     string    `yaml:"program"`
	Mode        string    `yaml:"mode"`
	Source      string    `yaml:"random_source,omitempty"`
	Seed        uint64    `yaml:"seed,omitempty"`

	Loci             int    `yaml:"loci,omitempty"`
	InputIndividuals int    `yaml:"input_individuals,omitempty"`
	FinalIndividuals int    `yaml:"final_individuals,omitempty"`
	LocusKind        string `yaml:"locus_kind,omitempty"`
	MotifLengths     []int  `yaml:"motif_lengths,omitempty,flow"`

	Ranges     Ranges                `yaml:"ranges"`
	Drawn      string                `yaml:"drawn"`
	Iterations []arguments.Iteration `yaml:"iterations,omitempty"`
}

// Ranges holds the parameter bounds the draws came from. The bottleneck is
// reported halved, as stored.
type Ranges struct {
	Bottleneck       *arguments.Range[int]     `yaml:"bottleneck,omitempty"`
	BottleneckLength *arguments.Range[int]     `yaml:"bottleneck_length,omitempty"`
	MutationRate     *arguments.Range[float64] `yaml:"mutation_rate,omitempty"`
	Theta            *arguments.Range[float64] `yaml:"theta,omitempty"`
}

// New builds a report from a resolved configuration. Fields the mode left
// unset are omitted. An empty runID gets a fresh UUID.
func New(runID string, c *arguments.Config, seed uint64) *Report {
	if runID == "" {
		runID = uuid.NewString()
	}
	r := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Program:     c.ProgramName(),
		Mode:        c.Mode().String(),
		Seed:        seed,
		Drawn:       drawnParams(c).String(),
		Iterations:  c.Draws(),
	}

	if kind, err := c.RandomSource(); err == nil {
		r.Source = kind.String()
	}
	if n, err := c.NLoci(); err == nil {
		r.Loci = n
	}
	if n, err := c.InputIndividuals(); err == nil {
		r.InputIndividuals = n
	}
	if n, err := c.FinalIndividuals(); err == nil {
		r.FinalIndividuals = n
	}
	if kind, err := c.LocusKind(); err == nil {
		r.LocusKind = kind.String()
	}
	if motifs, err := c.MotifLengths(); err == nil {
		r.MotifLengths = motifs
	}

	if lo, err := c.BottleneckMin(); err == nil {
		hi, _ := c.BottleneckMax()
		r.Ranges.Bottleneck = &arguments.Range[int]{Min: lo, Max: hi}
	}
	if lo, err := c.BottleneckLengthMin(); err == nil {
		hi, _ := c.BottleneckLengthMax()
		r.Ranges.BottleneckLength = &arguments.Range[int]{Min: lo, Max: hi}
	}
	if lo, err := c.MutationRateMin(); err == nil {
		hi, _ := c.MutationRateMax()
		r.Ranges.MutationRate = &arguments.Range[float64]{Min: lo, Max: hi}
	}
	if lo, err := c.ThetaMin(); err == nil {
		hi, _ := c.ThetaMax()
		r.Ranges.Theta = &arguments.Range[float64]{Min: lo, Max: hi}
	}

	return r
}

func drawnParams(c *arguments.Config) arguments.Param {
	var p arguments.Param
	for _, param := range []arguments.Param{
		arguments.ParamBottleneckSize,
		arguments.ParamBottleneckLength,
		arguments.ParamTheta,
		arguments.ParamMutationRate,
	} {
		if c.Drawn(param) {
			p |= param
		}
	}
	return p
}

// Save writes the report to path, creating parent directories as needed.
func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report file: %w", err)
	}

	return &r, nil
}
