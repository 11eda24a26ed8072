package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/onesamp/onesamp/pkg/arguments"
	"github.com/onesamp/onesamp/pkg/logger"
	"github.com/onesamp/onesamp/pkg/report"
)

func quiet(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() {
		logger.SetLevel(logger.InfoLevel)
	})
}

func TestSplitArgs(t *testing.T) {
	fs := newAmbientFlags()
	ambient, rest := splitArgs(fs, []string{"-rC", "--seed", "7", "-l10", "--no-color", "-s", "--report=out.yaml", "-e"})

	if diff := cmp.Diff([]string{"--seed", "7", "--no-color", "--report=out.yaml"}, ambient); diff != "" {
		t.Errorf("Ambient mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-rC", "-l10", "-s", "-e"}, rest); diff != "" {
		t.Errorf("Rest mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsFromEnv(t *testing.T) {
	t.Setenv("ONESAMP_SEED", "99")
	t.Setenv("ONESAMP_LOG_LEVEL", "debug")

	opts, rest, err := loadOptions([]string{"-rC", "--report", "x.yaml", "--log-level=warn"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := runOptions{LogLevel: "warn", Seed: 99, Report: "x.yaml"}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-rC"}, rest); diff != "" {
		t.Errorf("Rest mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsUnknown(t *testing.T) {
	if _, _, err := loadOptions([]string{"--bogus"}); err == nil {
		t.Errorf("Expected error for an unknown long option")
	}
}

func TestRunWritesReportAndDraws(t *testing.T) {
	quiet(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	args := strings.Fields("-rC -l50 -i30 -b10,20 -d1,5 -s -t100 -u1e-6,1e-5 -v0.04,4.0 -f0.05 -o0.8 -e")
	args = append(args, "--seed=5", "--no-color", "--show-draws", "--report="+path)

	var out bytes.Buffer
	if err := ExecuteArgs(args, &out); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(out.String(), "MUTATION RATE") {
		t.Errorf("Expected a draws table, got:\n%s", out.String())
	}
	if lines := strings.Count(out.String(), "\n"); lines < 101 {
		t.Errorf("Expected a header and 100 rows, got %d lines", lines)
	}

	r, err := report.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(r.Iterations) != 100 {
		t.Errorf("Expected 100 iterations in report, got %d", len(r.Iterations))
	}
	if r.Seed != 5 {
		t.Errorf("Expected seed 5, got %d", r.Seed)
	}
}

func TestRunLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetNoColor(true)
	t.Cleanup(func() {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logger.InfoLevel)
	})

	args := strings.Fields("-rC -l50 -i30 -b10,20 -d1,5 -s -t100 -u1e-6,1e-5 -v0.04,4.0 -f0.05 -o0.8 -e")
	args = append(args, "--seed=5", "--no-color")
	if err := ExecuteArgs(args, io.Discard); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for _, want := range []string{
		"Random seed: 5",
		"Ranges",
		"Bottleneck duration: 1-5",
		"Drawn parameters:",
		logger.IconDot + " " + arguments.ParamTheta.String(),
		"Configuration is valid",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in log output:\n%s", want, buf.String())
		}
	}
}

func TestRunReturnsConfigurationErrors(t *testing.T) {
	quiet(t)
	err := ExecuteArgs([]string{"-l5", "-l6"}, io.Discard)
	if !arguments.IsKind(err, arguments.KindGeneral) {
		t.Fatalf("Expected general error, got %v", err)
	}

	err = ExecuteArgs([]string{"-rC", "-l5", "-i4", "-s", "-w"}, io.Discard)
	if !arguments.IsKind(err, arguments.KindArgument) {
		t.Fatalf("Expected argument error for the missing -o, got %v", err)
	}
}

func TestModesAndFlagsCommands(t *testing.T) {
	var out bytes.Buffer
	if err := ExecuteArgs([]string{"modes"}, &out); err != nil {
		t.Fatalf("modes failed: %v", err)
	}
	for _, want := range []string{"-x", "syntax-check", "coalescent-example", "raw-stats", "single-generation", "example-population"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in modes output:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := ExecuteArgs([]string{"flags"}, &out); err != nil {
		t.Fatalf("flags failed: %v", err)
	}
	for _, want := range []string{"[C GFSR RESET]", "-m", "-o"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in flags output:\n%s", want, out.String())
		}
	}
}
