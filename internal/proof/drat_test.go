package proof

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriterRecordsAdditionsAndDeletions(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.AddClause([]int32{1, -2, 3}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := w.DeleteClause([]int32{1, -2}); err != nil {
		t.Fatalf("DeleteClause: %s", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %s", err)
	}

	want := "1 -2 3 0\nd 1 -2 0\n"
	if buf.String() != want {
		t.Errorf("Writer output = %q, want %q", buf.String(), want)
	}
}

func TestReadAllRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_ = w.AddClause([]int32{1, 2})
	_ = w.DeleteClause([]int32{-3})
	_ = w.AddClause([]int32{}) // empty clause: the derived contradiction
	_ = w.Flush()

	records, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll: %s", err)
	}

	want := []Record{
		{Lits: []int32{1, 2}},
		{Delete: true, Lits: []int32{-3}},
		{Lits: nil},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("ReadAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadAllRejectsMissingTerminator(t *testing.T) {
	_, err := ReadAll(strings.NewReader("1 2 3\n"))
	if err == nil {
		t.Errorf("ReadAll(): want error for missing terminating 0, got none")
	}
}

func TestReadAllSkipsBlankLines(t *testing.T) {
	records, err := ReadAll(strings.NewReader("1 0\n\n2 0\n"))
	if err != nil {
		t.Fatalf("ReadAll: %s", err)
	}
	if len(records) != 2 {
		t.Errorf("ReadAll(): got %d records, want 2", len(records))
	}
}
