package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/cutcard/cmd/cutcard/shared"
	"github.com/lox/cutcard/internal/fileutil"
	"github.com/lox/cutcard/internal/report"
	"github.com/lox/cutcard/internal/rounds"
	"github.com/lox/cutcard/internal/rules"
	"github.com/lox/cutcard/internal/shoe"
	"github.com/lox/cutcard/internal/strategy"
)

// RuleFlags override individual rules on top of the rules file (or the
// defaults when no file is given). Unset flags leave the value alone.
type RuleFlags struct {
	RulesFile string `kong:"name='rules-file',type='path',env='CUTCARD_RULES_FILE',help='HCL rules file'"`
	Decks     *int   `kong:"env='CUTCARD_DECKS',help='Number of decks (1-8)'"`
	H17       *bool  `kong:"name='h17',env='CUTCARD_H17',help='Dealer hits soft 17'"`
	DAS       *bool  `kong:"name='das',env='CUTCARD_DAS',help='Double down after split'"`
	DOA       *bool  `kong:"name='doa',env='CUTCARD_DOA',help='Double down on any two cards'"`
	D9        *bool  `kong:"name='d9',env='CUTCARD_D9',help='Double down on 9 (only without DOA)'"`
	MaxSplits *int   `kong:"name='max-splits',env='CUTCARD_MAX_SPLITS',help='Maximum number of splits per round'"`
	RSA       *bool  `kong:"name='rsa',env='CUTCARD_RSA',help='Re-split aces'"`
}

// Resolve loads the rules file when set and applies the flag overrides.
func (f RuleFlags) Resolve() (rules.Rules, error) {
	r := rules.Default()
	if f.RulesFile != "" {
		loaded, err := rules.Load(f.RulesFile)
		if err != nil {
			return rules.Rules{}, err
		}
		r = loaded
	}

	if f.Decks != nil {
		r.Decks = *f.Decks
	}
	if f.H17 != nil {
		r.H17 = *f.H17
	}
	if f.DAS != nil {
		r.DAS = *f.DAS
	}
	if f.DOA != nil {
		r.DOA = *f.DOA
		// Turning DOA on makes D9 meaningless; drop it unless asked for.
		if r.DOA && f.D9 == nil {
			r.D9 = false
		}
	}
	if f.D9 != nil {
		r.D9 = *f.D9
	}
	if f.MaxSplits != nil {
		r.MaxSplits = *f.MaxSplits
	}
	if f.RSA != nil {
		r.RSA = *f.RSA
	}

	if err := r.Validate(); err != nil {
		return rules.Rules{}, err
	}
	return r, nil
}

// RunFlags control the search and where its report goes.
type RunFlags struct {
	Strategy        string        `kong:"default='basic',enum='basic,stand,hit',env='CUTCARD_STRATEGY',help='Player strategy (${enum})'"`
	Chart           string        `kong:"type='path',env='CUTCARD_CHART',help='YAML chart replacing the built-in basic strategy'"`
	UpCard          []int         `kong:"name='up-card',help='Up cards to enumerate, 1 (ace) to 10 (default all)'"`
	Workers         int           `kong:"default='1',env='CUTCARD_WORKERS',help='Workers expanding each search level'"`
	ParallelUpCards int           `kong:"name='parallel-up-cards',default='1',help='Up cards searched concurrently'"`
	Output          string        `kong:"short='o',type='path',help='Write the report to a file instead of stdout'"`
	Format          string        `kong:"default='text',enum='text,json',help='Report format (${enum})'"`
	Summary         bool          `kong:"help='Print a summary table to stderr'"`
	Progress        bool          `kong:"help='Print a line to stderr as each up card finishes'"`
	Timeout         time.Duration `kong:"default='0s',help='Abort the search after this long (0 disables)'"`
	Debug           bool          `kong:"help='Enable debug logging'"`
	LogFormat       string        `kong:"name='log-format',default='text',enum='text,json',help='Log format (${enum})'"`
}

// enumeration is one resolved run of the search and its report.
type enumeration struct {
	rules  rules.Rules
	flags  RunFlags
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
	clock  quartz.Clock
}

func newEnumeration(r rules.Rules, flags RunFlags, logger *log.Logger) *enumeration {
	return &enumeration{
		rules:  r,
		flags:  flags,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
		clock:  quartz.NewReal(),
	}
}

func (e *enumeration) run(ctx context.Context) error {
	oracle, err := strategy.Named(e.flags.Strategy, e.flags.Chart)
	if err != nil {
		return err
	}
	s, err := shoe.New(e.rules.Decks)
	if err != nil {
		return err
	}

	if e.flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.flags.Timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)
	logger.Info("Starting enumeration",
		"rules", e.rules.String(),
		"strategy", e.flags.Strategy,
		"workers", e.flags.Workers,
		"parallel_up_cards", e.flags.ParallelUpCards)

	upCards := e.flags.UpCard
	if len(upCards) == 0 {
		for up := 1; up <= shoe.Ranks; up++ {
			upCards = append(upCards, up)
		}
	}

	opts := []rounds.Option{
		rounds.WithLogger(logger),
		rounds.WithClock(e.clock),
		rounds.WithWorkers(e.flags.Workers),
		rounds.WithParallelUpCards(e.flags.ParallelUpCards),
	}
	if e.flags.Progress {
		opts = append(opts, rounds.WithProgress(NewSimpleProgressMonitor(e.stderr, e.clock, len(upCards))))
	}

	start := e.clock.Now()
	results, err := rounds.EnumerateUpCards(ctx, s, e.rules, oracle, upCards, opts...)
	if err != nil {
		return fmt.Errorf("enumeration failed: %w", err)
	}

	meta := report.Meta{
		RunID:       runID,
		GeneratedAt: e.clock.Now().UTC(),
		Rules:       e.rules.String(),
		Strategy:    e.flags.Strategy,
	}
	write := func(w io.Writer) error {
		if e.flags.Format == "json" {
			return report.WriteJSON(w, results, meta)
		}
		return report.WriteText(w, results)
	}

	if e.flags.Output != "" {
		if err := fileutil.WriteAtomic(e.flags.Output, 0o644, write); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", "path", e.flags.Output, "format", e.flags.Format)
	} else if err := write(e.stdout); err != nil {
		return err
	}

	if e.flags.Summary {
		fmt.Fprint(e.stderr, report.Summary(e.rules.String(), results))
	}
	logger.Info("Enumeration complete", "up_cards", len(results), "elapsed", e.clock.Since(start))
	return nil
}

func (f RunFlags) logger() *log.Logger {
	return shared.SetupLogger(f.Debug, f.LogFormat)
}
