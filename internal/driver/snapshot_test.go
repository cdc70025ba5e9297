package driver

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestREPLTranscripts snapshots whole REPL sessions rather than asserting
// on individual substrings: a regression in prompt text, error
// formatting, or value printing shows up as a single diff against the
// stored snapshot.
func TestREPLTranscripts(t *testing.T) {
	sessions := map[string]string{
		"arithmetic_and_errors": "(+ 1 2)\n(car '())\n(* 6 7)\n",
		"define_and_recall":     "(define square (lambda (x) (* x x)))\n(square 9)\n",
	}

	for name, session := range sessions {
		t.Run(name, func(t *testing.T) {
			d, err := New(DefaultConfig(), io.Discard, strings.NewReader(""), nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			var out bytes.Buffer
			d.REPL(strings.NewReader(session), &out)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_transcript", name), out.String())
		})
	}
}
