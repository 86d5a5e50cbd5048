package strategy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lox/cutcard/internal/hand"
	"github.com/lox/cutcard/internal/shoe"
)

//go:embed charts/basic.yaml
var basicChart []byte

type code uint8

const (
	codeNone code = iota
	codeHit
	codeStand
	codeDoubleOrHit
	codeDoubleOrStand
	codeSplit
)

var codeNames = map[string]code{
	"-":  codeNone,
	"H":  codeHit,
	"S":  codeStand,
	"D":  codeDoubleOrHit,
	"DS": codeDoubleOrStand,
	"P":  codeSplit,
}

// row holds one chart line indexed by up card rank minus one.
type row [shoe.Ranks]code

// Chart is a table driven strategy keyed by hand total (hard and soft) and by
// pair rank. A Chart is immutable once built and safe for concurrent use.
type Chart struct {
	hard  map[int]row
	soft  map[int]row
	pairs map[int]row
}

// chartFile is the YAML layout. Rows list the dealer up card columns in the
// usual 2..T, A order.
type chartFile struct {
	Hard  map[int]string `yaml:"hard"`
	Soft  map[int]string `yaml:"soft"`
	Pairs map[int]string `yaml:"pairs"`
}

var defaultChart = sync.OnceValue(func() *Chart {
	c, err := ParseChart(basicChart)
	if err != nil {
		panic(fmt.Sprintf("built-in chart: %v", err))
	}
	return c
})

// DefaultChart returns the built-in multi-deck basic strategy.
func DefaultChart() *Chart {
	return defaultChart()
}

// LoadChart reads a YAML chart file.
func LoadChart(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	c, err := ParseChart(data)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", path, err)
	}
	return c, nil
}

// ParseChart decodes a YAML chart.
func ParseChart(data []byte) (*Chart, error) {
	var f chartFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}

	c := &Chart{
		hard:  make(map[int]row, len(f.Hard)),
		soft:  make(map[int]row, len(f.Soft)),
		pairs: make(map[int]row, len(f.Pairs)),
	}
	tables := []struct {
		name     string
		src      map[int]string
		dst      map[int]row
		min, max int
		pairs    bool
	}{
		{"hard", f.Hard, c.hard, 4, 21, false},
		{"soft", f.Soft, c.soft, 12, 21, false},
		{"pairs", f.Pairs, c.pairs, 1, shoe.Ranks, true},
	}
	for _, tbl := range tables {
		for key, line := range tbl.src {
			if key < tbl.min || key > tbl.max {
				return nil, fmt.Errorf("%s %d: key must be between %d and %d", tbl.name, key, tbl.min, tbl.max)
			}
			r, err := parseRow(line, tbl.pairs)
			if err != nil {
				return nil, fmt.Errorf("%s %d: %w", tbl.name, key, err)
			}
			tbl.dst[key] = r
		}
	}
	return c, nil
}

func parseRow(line string, pairs bool) (row, error) {
	var r row
	fields := strings.Fields(line)
	if len(fields) != shoe.Ranks {
		return r, fmt.Errorf("want %d columns, got %d", shoe.Ranks, len(fields))
	}
	for i, f := range fields {
		c, ok := codeNames[strings.ToUpper(f)]
		if !ok {
			return r, fmt.Errorf("column %d: unknown code %q", i+1, f)
		}
		if pairs != (c == codeSplit || c == codeNone) {
			return r, fmt.Errorf("column %d: code %q not allowed here", i+1, f)
		}
		// Column order is 2..T then A.
		rank := i + 2
		if i == shoe.Ranks-1 {
			rank = shoe.Ace
		}
		r[rank-1] = c
	}
	return r, nil
}

// Decide implements Oracle.
func (c *Chart) Decide(h hand.Hand, upCard int, doubleAllowed, splitAllowed, _ bool) Action {
	if upCard < 1 || upCard > shoe.Ranks {
		return Stand
	}
	col := upCard - 1

	if splitAllowed {
		if rank, ok := h.Pair(); ok {
			if r, ok := c.pairs[rank]; ok && r[col] == codeSplit {
				return Split
			}
		}
	}

	total := h.Total()
	var entry code
	if h.Soft() {
		if r, ok := c.soft[total]; ok {
			entry = r[col]
		} else if total >= 19 {
			entry = codeStand
		} else {
			entry = codeHit
		}
	} else {
		if r, ok := c.hard[total]; ok {
			entry = r[col]
		} else if total >= 17 {
			entry = codeStand
		} else {
			entry = codeHit
		}
	}

	switch entry {
	case codeStand:
		return Stand
	case codeDoubleOrHit:
		if doubleAllowed {
			return Double
		}
		return Hit
	case codeDoubleOrStand:
		if doubleAllowed {
			return Double
		}
		return Stand
	default:
		return Hit
	}
}
