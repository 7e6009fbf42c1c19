package interp

import (
	"bytes"
	"testing"

	"github.com/cbscript/cb/internal/samples"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestSampleFixtures runs every program registered in internal/samples
// through the evaluator and snapshot-tests its captured stdout. Since Cb has
// no lexer/parser in this tree (spec.md §1), the hand-built sample ASTs play
// the role the teacher's .pas fixture files play in its own
// internal/interp/fixture_test.go: a corpus of small, complete programs
// whose interpreted output is pinned by a snapshot rather than hand-written
// expectations.
func TestSampleFixtures(t *testing.T) {
	for _, name := range samples.Names() {
		t.Run(name, func(t *testing.T) {
			sample, ok := samples.Get(name)
			if !ok {
				t.Fatalf("sample %q vanished from the registry mid-test", name)
			}

			var buf bytes.Buffer
			evaluator := NewEvaluator(&buf)
			exitCode, diags := evaluator.RunProgram(sample.Program)

			for _, d := range diags {
				t.Logf("diagnostic: %s", d.Format(false))
			}

			snaps.MatchSnapshot(t, name+"_exit_code", exitCode)
			snaps.MatchSnapshot(t, name+"_output", buf.String())
		})
	}
}
