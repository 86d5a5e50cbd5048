package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/cutcard/internal/rounds"
	"github.com/lox/cutcard/internal/shoe"
)

// SimpleProgressMonitor prints one line per finished up card without
// redrawing the terminal, so it stays readable when stderr is a file.
type SimpleProgressMonitor struct {
	mu        sync.Mutex
	w         io.Writer
	clock     quartz.Clock
	total     int
	completed int
	startTime time.Time
	started   map[int]time.Time
}

// NewSimpleProgressMonitor creates a monitor expecting total up cards.
func NewSimpleProgressMonitor(w io.Writer, clock quartz.Clock, total int) *SimpleProgressMonitor {
	return &SimpleProgressMonitor{
		w:         w,
		clock:     clock,
		total:     total,
		startTime: clock.Now(),
		started:   make(map[int]time.Time),
	}
}

// OnUpCardStart is called when the search for an up card begins
func (m *SimpleProgressMonitor) OnUpCardStart(upCard int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started[upCard] = m.clock.Now()
}

// OnUpCardDone is called once an up card's partitions are complete
func (m *SimpleProgressMonitor) OnUpCardDone(res *rounds.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	elapsed := m.clock.Since(m.started[res.UpCard])
	delete(m.started, res.UpCard)

	fmt.Fprintf(m.w, "Up card %d/%d: %s dealer=%d busted=%d (%s)\n",
		m.completed, m.total, shoe.RankLabel(res.UpCard),
		len(res.DealerNeeded), len(res.AllBusted), elapsed.Round(time.Millisecond))

	if m.completed == m.total {
		fmt.Fprintf(m.w, "Completed %d up cards in %s\n", m.total, m.clock.Since(m.startTime).Round(time.Millisecond))
	}
}
