// Package ingest implements the row-to-record pipeline and identifier
// translation: parsing a resource's raw rows under its InputSchema,
// filtering, extracting direction/sign/references/taxa, translating
// identifiers, and emitting Interaction contributions into a Network.
package ingest

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// RawRow is one row handed to the pipeline: either a raw line (to be
// tokenized with the schema's separator) or an already-tokenized
// sequence.
type RawRow struct {
	Line   string
	Tokens []string // non-nil: already tokenized, Line is ignored
}

// Source supplies the rows of one resource's input. Fetching the
// underlying bytes (HTTP/FTP/file/symbolic function) is an external
// concern; Source only has to hand back rows already retrieved.
type Source interface {
	Rows() ([]RawRow, error)
}

// lineSource wraps a fixed slice of raw lines (the common case: an
// HTTP(S) blob or a local file, already decoded to lines by the external
// fetch/cache layer).
type lineSource struct {
	lines []string
}

// NewLineSource builds a Source over pre-decoded lines.
func NewLineSource(lines []string) Source {
	return lineSource{lines: lines}
}

func (s lineSource) Rows() ([]RawRow, error) {
	out := make([]RawRow, len(s.lines))
	for i, l := range s.lines {
		out[i] = RawRow{Line: l}
	}
	return out, nil
}

// NewReaderSource decodes r line by line as UTF-8, falling back to Latin-1
// decoding for any line that isn't valid UTF-8.
func NewReaderSource(r io.Reader) (Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		raw := scanner.Bytes()
		if utf8.Valid(raw) {
			lines = append(lines, string(raw))
		} else {
			lines = append(lines, decodeLatin1(raw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lineSource{lines: lines}, nil
}

func decodeLatin1(raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// tokenSource wraps pre-tokenized rows, e.g. from a symbolic function
// source that already split its records.
type tokenSource struct {
	rows [][]string
}

// NewTokenSource builds a Source over already-tokenized rows.
func NewTokenSource(rows [][]string) Source {
	return tokenSource{rows: rows}
}

func (s tokenSource) Rows() ([]RawRow, error) {
	out := make([]RawRow, len(s.rows))
	for i, t := range s.rows {
		out[i] = RawRow{Tokens: t}
	}
	return out, nil
}

// tokenize splits a RawRow into fields, using the schema separator when the
// row arrived as a raw line, or returning its tokens unchanged otherwise.
func tokenize(row RawRow, separator string) []string {
	if row.Tokens != nil {
		return row.Tokens
	}
	if separator == "" {
		separator = "\t"
	}
	return strings.Split(row.Line, separator)
}

// isBlank reports whether a raw row carries no content worth parsing.
func isBlank(row RawRow) bool {
	if row.Tokens != nil {
		return len(row.Tokens) == 0
	}
	return strings.TrimSpace(row.Line) == ""
}
