// Package rules holds the table rule variations that shape which player
// decisions are legal while rounds are enumerated.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cutcard/internal/shoe"
)

// MaxSplits bounds the split limit so a round's per-rank counts fit in a byte.
const MaxSplits = 8

var ErrContradictory = errors.New("contradictory rules")

// Rules is a fixed rule set for the lifetime of a search.
type Rules struct {
	Decks     int  // decks in the shoe
	H17       bool // dealer hits soft 17
	DAS       bool // double down after split
	DOA       bool // double down on any two cards
	D9        bool // double down on 9, only consulted without DOA
	MaxSplits int  // maximum number of splits per round
	RSA       bool // resplit aces
}

// Default returns six decks, S17, DAS, DOA, SPL3 and RSA.
func Default() Rules {
	return Rules{
		Decks:     6,
		H17:       false,
		DAS:       true,
		DOA:       true,
		D9:        false,
		MaxSplits: 3,
		RSA:       true,
	}
}

// Validate ensures the rules can drive a search.
func (r Rules) Validate() error {
	if r.Decks < 1 || r.Decks > shoe.MaxDecks {
		return fmt.Errorf("decks must be between 1 and %d, got %d", shoe.MaxDecks, r.Decks)
	}
	if r.MaxSplits < 0 || r.MaxSplits > MaxSplits {
		return fmt.Errorf("max splits must be between 0 and %d, got %d", MaxSplits, r.MaxSplits)
	}
	if r.DOA && r.D9 {
		return fmt.Errorf("%w: D9 is only consulted when DOA is off", ErrContradictory)
	}
	return nil
}

// CanDouble reports whether a two card hand with the given total may double.
// afterSplit marks hands that were spawned by a split.
func (r Rules) CanDouble(total int, afterSplit bool) bool {
	if afterSplit && !r.DAS {
		return false
	}
	return r.DOA || total == 10 || total == 11 || (r.D9 && total == 9)
}

// CanSplit reports whether a pair of rank may be split when the round already
// holds hands hands. resplit marks a pair that itself came from a split.
func (r Rules) CanSplit(rank, hands int, resplit bool) bool {
	if hands > r.MaxSplits {
		return false
	}
	return r.RSA || !(resplit && rank == shoe.Ace)
}

// String renders a compact rule tag such as "6D S17 DAS DOA SPL3 RSA".
func (r Rules) String() string {
	parts := []string{fmt.Sprintf("%dD", r.Decks)}
	if r.H17 {
		parts = append(parts, "H17")
	} else {
		parts = append(parts, "S17")
	}
	if r.DAS {
		parts = append(parts, "DAS")
	}
	switch {
	case r.DOA:
		parts = append(parts, "DOA")
	case r.D9:
		parts = append(parts, "D9")
	default:
		parts = append(parts, "D10")
	}
	parts = append(parts, fmt.Sprintf("SPL%d", r.MaxSplits))
	if r.RSA {
		parts = append(parts, "RSA")
	}
	return strings.Join(parts, " ")
}

// fileRules is the HCL layout. Every attribute is optional and falls back to
// Default.
type fileRules struct {
	Decks     *int  `hcl:"decks,optional"`
	H17       *bool `hcl:"h17,optional"`
	DAS       *bool `hcl:"das,optional"`
	DOA       *bool `hcl:"doa,optional"`
	D9        *bool `hcl:"d9,optional"`
	MaxSplits *int  `hcl:"max_splits,optional"`
	RSA       *bool `hcl:"rsa,optional"`
}

// Load reads rules from an HCL file. A missing file yields the defaults.
func Load(filename string) (Rules, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fr fileRules
	diags = gohcl.DecodeBody(file.Body, nil, &fr)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	r := Default()
	if fr.Decks != nil {
		r.Decks = *fr.Decks
	}
	if fr.H17 != nil {
		r.H17 = *fr.H17
	}
	if fr.DAS != nil {
		r.DAS = *fr.DAS
	}
	if fr.DOA != nil {
		r.DOA = *fr.DOA
	}
	if fr.D9 != nil {
		r.D9 = *fr.D9
	}
	if fr.MaxSplits != nil {
		r.MaxSplits = *fr.MaxSplits
	}
	if fr.RSA != nil {
		r.RSA = *fr.RSA
	}

	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("%s: %w", filename, err)
	}
	return r, nil
}
