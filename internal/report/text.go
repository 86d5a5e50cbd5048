// Package report renders enumeration results.
package report

import (
	"bufio"
	"io"
	"strconv"

	"github.com/lox/cutcard/internal/rounds"
)

// WriteText writes results in the line format consumed by downstream tools:
// for each up card, a line holding the up card, then the all-busted partition
// and the dealer-needed partition, each as a size line followed by one line
// per outcome. Every count on an outcome line is followed by a single space.
func WriteText(w io.Writer, results []*rounds.Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		writeInt(bw, res.UpCard)
		bw.WriteByte('\n')
		for _, set := range []rounds.OutcomeSet{res.AllBusted, res.DealerNeeded} {
			writeInt(bw, len(set))
			bw.WriteByte('\n')
			for _, o := range set.Sorted() {
				for _, n := range o {
					writeInt(bw, int(n))
					bw.WriteByte(' ')
				}
				bw.WriteByte('\n')
			}
		}
	}
	return bw.Flush()
}

func writeInt(bw *bufio.Writer, n int) {
	var buf [20]byte
	bw.Write(strconv.AppendInt(buf[:0], int64(n), 10))
}
