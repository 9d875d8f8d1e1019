// Package proof implements the DRAT (Deletion Resolution Asymmetric
// Tautology) clausal-proof format: one record per line, "<lits> 0" to add a
// clause and "d <lits> 0" to delete one.
//
// Grounded on yass's main.go, which writes the textual solve report with
// plain fmt.Fprintf calls directly against os.Stdout/os.Create with no
// intervening writer abstraction; Writer follows the same minimal style,
// just scoped to one record type instead of the whole report.
package proof

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer emits DRAT records to an underlying io.Writer.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

// NewWriter wraps w. The caller owns w's lifetime; call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// AddClause emits an addition record for the given signed literals (DIMACS
// convention: positive = true, negative = false, 1-indexed variables).
func (p *Writer) AddClause(lits []int32) error {
	return p.record("", lits)
}

// DeleteClause emits a deletion record.
func (p *Writer) DeleteClause(lits []int32) error {
	return p.record("d ", lits)
}

func (p *Writer) record(prefix string, lits []int32) error {
	if _, err := p.w.WriteString(prefix); err != nil {
		return err
	}
	for _, l := range lits {
		if _, err := p.w.WriteString(strconv.FormatInt(int64(l), 10)); err != nil {
			return err
		}
		if err := p.w.WriteByte(' '); err != nil {
			return err
		}
	}
	_, err := p.w.WriteString("0\n")
	return err
}

// Flush flushes any buffered output to the underlying writer.
func (p *Writer) Flush() error {
	return p.w.Flush()
}

// Record is one parsed DRAT line: a clause addition or deletion.
type Record struct {
	Delete bool
	Lits   []int32
}

// ReadAll parses a full DRAT proof stream.
func ReadAll(r io.Reader) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec := Record{}
		if strings.HasPrefix(line, "d ") {
			rec.Delete = true
			line = line[2:]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[len(fields)-1] != "0" {
			return nil, fmt.Errorf("malformed DRAT line %q: missing terminating 0", line)
		}
		for _, f := range fields[:len(fields)-1] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("malformed DRAT literal %q: %w", f, err)
			}
			rec.Lits = append(rec.Lits, int32(v))
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
