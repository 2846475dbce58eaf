package recorder_test

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/recorder"
	"github.com/funvibe/funrelay/internal/relay"
)

func openTemp(t *testing.T) *recorder.Recorder {
	t.Helper()
	r, err := recorder.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func planFor(t *testing.T, expr string) relay.Plan {
	t.Helper()
	typ, errs := parser.ParseString(expr, "", nil)
	if len(errs) > 0 {
		t.Fatalf("parse %q failed: %v", expr, errs[0])
	}
	return relay.PlanFor(typ)
}

func TestRecordAndRecent(t *testing.T) {
	r := openTemp(t)

	first, err := r.Record("plan", "Widget", []relay.Plan{planFor(t, "Widget")})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	second, err := r.Record("plan", "int[5]", []relay.Plan{planFor(t, "int[5]")})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first == second {
		t.Fatal("run ids should be unique")
	}

	runs, err := r.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent returned %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("order = [%s, %s], want [%s, %s]", runs[0].ID, runs[1].ID, second, first)
	}
	if runs[0].Source != "int[5]" {
		t.Errorf("newest source = %q, want %q", runs[0].Source, "int[5]")
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if len(runs[0].Plans) != 1 {
		t.Fatalf("newest run has %d plans, want 1", len(runs[0].Plans))
	}
	p := runs[0].Plans[0]
	if p.Forwarding != "int *" || p.Target != "int (&)[5]" || p.Conversion != "array reform" {
		t.Errorf("stored plan = %+v", p)
	}
}

func TestRecentLimit(t *testing.T) {
	r := openTemp(t)
	for _, expr := range []string{"int", "char *", "Widget", "int &&"} {
		if _, err := r.Record("plan", expr, []relay.Plan{planFor(t, expr)}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := r.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent(2) returned %d runs", len(runs))
	}
	if runs[0].Source != "int &&" || runs[1].Source != "Widget" {
		t.Errorf("order = [%s, %s], want newest two", runs[0].Source, runs[1].Source)
	}
}

func TestRecordSignatureRun(t *testing.T) {
	r := openTemp(t)

	typ, errs := parser.ParseString("void (int, Widget)", "", nil)
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs[0])
	}
	plans, ok := relay.SignaturePlans(typ, relay.DefaultOptions())
	if !ok {
		t.Fatal("SignaturePlans failed")
	}

	if _, err := r.Record("plan", "void (int, Widget)", plans); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := r.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs[0].Plans) != 2 {
		t.Fatalf("stored %d plans, want 2", len(runs[0].Plans))
	}
	if runs[0].Plans[0].Position != 0 || runs[0].Plans[1].Position != 1 {
		t.Errorf("positions = %d, %d", runs[0].Plans[0].Position, runs[0].Plans[1].Position)
	}
}

func TestDiscardIsASink(t *testing.T) {
	var sink recorder.Sink = recorder.Discard{}
	id, err := sink.Record("plan", "int", nil)
	if err != nil {
		t.Fatalf("Discard.Record error = %v", err)
	}
	if id != "" {
		t.Errorf("Discard.Record id = %q, want empty", id)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Discard.Close error = %v", err)
	}
}
