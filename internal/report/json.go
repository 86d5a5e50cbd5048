package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lox/cutcard/internal/rounds"
)

// Meta describes the run that produced a report.
type Meta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Rules       string    `json:"rules"`
	Strategy    string    `json:"strategy"`
}

type jsonReport struct {
	Meta
	UpCards []jsonUpCard `json:"up_cards"`
}

type jsonUpCard struct {
	UpCard       int       `json:"up_card"`
	AllBusted    [][]int   `json:"all_busted"`
	DealerNeeded [][]int   `json:"dealer_needed"`
	Stats        jsonStats `json:"stats"`
}

type jsonStats struct {
	Levels         int   `json:"levels"`
	StatesExpanded int64 `json:"states_expanded"`
	Terminals      int64 `json:"terminals"`
	PeakFrontier   int   `json:"peak_frontier"`
	OracleCalls    int64 `json:"oracle_calls"`
	Splits         int64 `json:"splits"`
	ElapsedMillis  int64 `json:"elapsed_ms"`
}

// WriteJSON writes results as a single indented JSON document.
func WriteJSON(w io.Writer, results []*rounds.Result, meta Meta) error {
	rep := jsonReport{Meta: meta, UpCards: make([]jsonUpCard, 0, len(results))}
	for _, res := range results {
		rep.UpCards = append(rep.UpCards, jsonUpCard{
			UpCard:       res.UpCard,
			AllBusted:    vectors(res.AllBusted),
			DealerNeeded: vectors(res.DealerNeeded),
			Stats: jsonStats{
				Levels:         res.Stats.Levels,
				StatesExpanded: res.Stats.StatesExpanded,
				Terminals:      res.Stats.Terminals,
				PeakFrontier:   res.Stats.PeakFrontier,
				OracleCalls:    res.Stats.OracleCalls,
				Splits:         res.Stats.Splits,
				ElapsedMillis:  res.Stats.Elapsed.Milliseconds(),
			},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func vectors(set rounds.OutcomeSet) [][]int {
	out := make([][]int, 0, len(set))
	for _, o := range set.Sorted() {
		v := make([]int, len(o))
		for i, n := range o {
			v[i] = int(n)
		}
		out = append(out, v)
	}
	return out
}
