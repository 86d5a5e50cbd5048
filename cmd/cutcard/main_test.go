package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cutcard/internal/rules"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cutcard"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	return &cli, ctx, err
}

func TestRuleFlagsResolve(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "defaults", args: nil, want: "6D S17 DAS DOA SPL3 RSA"},
		{name: "decks and h17", args: []string{"--decks=2", "--h17"}, want: "2D H17 DAS DOA SPL3 RSA"},
		{name: "double on nine", args: []string{"--doa=false", "--d9"}, want: "6D S17 DAS D9 SPL3 RSA"},
		{name: "double on ten only", args: []string{"--doa=false"}, want: "6D S17 DAS D10 SPL3 RSA"},
		{name: "no splits", args: []string{"--max-splits=0", "--rsa=false", "--das=false"}, want: "6D S17 DOA SPL0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, err := parseCLI(t, append([]string{"rules"}, tt.args...)...)
			require.NoError(t, err)
			r, err := cli.Rules.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestRuleFlagsRejectInvalid(t *testing.T) {
	cli, _, err := parseCLI(t, "rules", "--doa", "--d9")
	require.NoError(t, err)
	_, err = cli.Rules.Resolve()
	assert.ErrorIs(t, err, rules.ErrContradictory)

	cli, _, err = parseCLI(t, "rules", "--decks=9")
	require.NoError(t, err)
	_, err = cli.Rules.Resolve()
	assert.Error(t, err)
}

func TestRuleFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hcl")
	require.NoError(t, os.WriteFile(path, []byte("decks = 1\nmax_splits = 0\nrsa = false\n"), 0o644))

	cli, _, err := parseCLI(t, "rules", "--rules-file", path, "--max-splits=2")
	require.NoError(t, err)
	r, err := cli.Rules.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "1D S17 DAS DOA SPL2", r.String())
}

func TestRuleFlagsFromEnv(t *testing.T) {
	t.Setenv("CUTCARD_DECKS", "4")
	t.Setenv("CUTCARD_H17", "true")

	cli, _, err := parseCLI(t, "rules")
	require.NoError(t, err)
	r, err := cli.Rules.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 4, r.Decks)
	assert.True(t, r.H17)
}

func TestEnumerateIsDefaultCommand(t *testing.T) {
	cli, ctx, err := parseCLI(t, "--decks=1", "--strategy=stand")
	require.NoError(t, err)
	assert.Equal(t, "enumerate", ctx.Command())
	assert.Equal(t, "stand", cli.Enumerate.Strategy)
	assert.Equal(t, "text", cli.Enumerate.Format)
	assert.Equal(t, 1, cli.Enumerate.Workers)
}

func TestUnknownStrategyRejected(t *testing.T) {
	_, _, err := parseCLI(t, "enumerate", "--strategy=martingale")
	assert.Error(t, err)
}

func newTestEnumeration(t *testing.T, flags RunFlags) (*enumeration, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	r := rules.Default()
	r.Decks = 1
	r.MaxSplits = 0

	var stdout, stderr bytes.Buffer
	e := &enumeration{
		rules:  r,
		flags:  flags,
		stdout: &stdout,
		stderr: &stderr,
		logger: log.New(&stderr),
		clock:  quartz.NewMock(t),
	}
	return e, &stdout, &stderr
}

func TestEnumerationTextToStdout(t *testing.T) {
	e, stdout, stderr := newTestEnumeration(t, RunFlags{
		Strategy: "stand",
		UpCard:   []int{10},
		Format:   "text",
		Workers:  1,
		Summary:  true,
		Progress: true,
	})
	require.NoError(t, e.run(context.Background()))

	lines := strings.Split(stdout.String(), "\n")
	require.Greater(t, len(lines), 3)
	assert.Equal(t, "10", lines[0])
	assert.Equal(t, "0", lines[1])
	assert.Equal(t, "55", lines[2])
	// Up card line, two counts and 55 vectors, plus the empty tail.
	assert.Len(t, lines, 1+2+55+1)

	assert.Contains(t, stderr.String(), "1D S17 DAS DOA SPL0 RSA")
	assert.Contains(t, stderr.String(), "Enumeration complete")
	assert.Contains(t, stderr.String(), "Up card 1/1: T dealer=55 busted=0")
}

func TestEnumerationJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	e, stdout, _ := newTestEnumeration(t, RunFlags{
		Strategy:        "basic",
		UpCard:          []int{1, 6},
		Format:          "json",
		Workers:         2,
		ParallelUpCards: 2,
		Output:          out,
	})
	require.NoError(t, e.run(context.Background()))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc struct {
		RunID    string `json:"run_id"`
		Rules    string `json:"rules"`
		Strategy string `json:"strategy"`
		UpCards  []struct {
			UpCard       int     `json:"up_card"`
			DealerNeeded [][]int `json:"dealer_needed"`
		} `json:"up_cards"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, "1D S17 DAS DOA SPL0 RSA", doc.Rules)
	assert.Equal(t, "basic", doc.Strategy)
	require.Len(t, doc.UpCards, 2)
	assert.Equal(t, 1, doc.UpCards[0].UpCard)
	assert.Equal(t, 6, doc.UpCards[1].UpCard)
	assert.NotEmpty(t, doc.UpCards[1].DealerNeeded)
}

func TestEnumerationErrors(t *testing.T) {
	e, _, _ := newTestEnumeration(t, RunFlags{Strategy: "basic", Chart: filepath.Join(t.TempDir(), "missing.yaml"), Format: "text"})
	e.flags.UpCard = []int{10}
	assert.Error(t, e.run(context.Background()))

	e, _, _ = newTestEnumeration(t, RunFlags{Strategy: "stand", UpCard: []int{0}, Format: "text"})
	assert.Error(t, e.run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, _, _ = newTestEnumeration(t, RunFlags{Strategy: "stand", Format: "text"})
	assert.ErrorIs(t, e.run(ctx), context.Canceled)
}

func TestSettleSkipped(t *testing.T) {
	tests := []struct {
		name string
		in   rules.Rules
		want string
	}{
		{
			name: "no das keeps doa",
			in:   rules.Rules{Decks: 6, DAS: false, DOA: false, D9: true, MaxSplits: 3, RSA: true},
			want: "6D S17 DOA SPL3 RSA",
		},
		{
			name: "doa drops d9",
			in:   rules.Rules{Decks: 2, DAS: true, DOA: true, D9: true, MaxSplits: 3, RSA: false},
			want: "2D S17 DAS DOA SPL3",
		},
		{
			name: "single split keeps rsa",
			in:   rules.Rules{Decks: 1, H17: true, DAS: true, DOA: false, D9: true, MaxSplits: 1, RSA: false},
			want: "1D H17 DAS D9 SPL1 RSA",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settleSkipped(tt.in)
			require.NoError(t, got.Validate())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEnvFileFromArgs(t *testing.T) {
	assert.Equal(t, ".env", envFileFromArgs(nil))
	assert.Equal(t, "a.env", envFileFromArgs([]string{"rules", "--env-file", "a.env"}))
	assert.Equal(t, "b.env", envFileFromArgs([]string{"--env-file=b.env", "rules"}))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CUTCARD_DOTENV_TEST=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CUTCARD_DOTENV_TEST") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "7", os.Getenv("CUTCARD_DOTENV_TEST"))
}
