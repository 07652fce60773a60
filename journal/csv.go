package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franklinfx2/master-trader-sub000/pkg/id"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

// CSVHeader is the column layout written by CSV and WriteCSV. ReadCSV
// matches columns by name, so other orders and extra columns are accepted.
var CSVHeader = []string{
	"trade_id", "instrument", "outcome", "r_multiple", "executed_at",
	"session", "setup_type", "htf_bias", "rules_followed", "grade",
	"direction", "confidence", "risk_pct", "notes",
}

var csvTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CSV is a Recorder appending trades to a CSV file.
type CSV struct {
	w *csv.Writer
	f *os.File
}

var _ Recorder = (*CSV)(nil)

// NewCSV creates path and writes the header row.
func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordTrade(_ context.Context, t trade.Record) error {
	if err := validate(t); err != nil {
		return err
	}
	if err := j.w.Write(csvRow(t)); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

// WriteCSV writes a header and one row per trade.
func WriteCSV(w io.Writer, trades []trade.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		if err := cw.Write(csvRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses trades from r. The first row must be a header with at least
// an outcome column. Rows without a trade_id get a fresh ULID stamped with
// the execution time. Blank optional cells stay nil.
func ReadCSV(r io.Reader) ([]trade.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: missing header row")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["outcome"]; !ok {
		return nil, fmt.Errorf("csv: header has no outcome column")
	}

	var out []trade.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec, err := parseRow(cell)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(cell func(string) string) (trade.Record, error) {
	var (
		rec trade.Record
		err error
	)

	if rec.Outcome, err = trade.ParseOutcome(cell("outcome")); err != nil {
		return rec, err
	}
	if s := cell("executed_at"); s != "" {
		if rec.ExecutedAt, err = parseTime(s); err != nil {
			return rec, fmt.Errorf("executed_at: %w", err)
		}
	}
	if rec.RMultiple, err = parseFloat(cell("r_multiple")); err != nil {
		return rec, fmt.Errorf("r_multiple: %w", err)
	}
	if rec.RiskPct, err = parseFloat(strings.TrimSuffix(cell("risk_pct"), "%")); err != nil {
		return rec, fmt.Errorf("risk_pct: %w", err)
	}
	if s := cell("confidence"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return rec, fmt.Errorf("confidence: %w", err)
		}
		rec.Confidence = trade.Int(n)
	}
	if s := cell("rules_followed"); s != "" {
		b, err := parseBool(s)
		if err != nil {
			return rec, fmt.Errorf("rules_followed: %w", err)
		}
		rec.RulesFollowed = trade.Bool(b)
	}

	rec.TradeID = cell("trade_id")
	if rec.TradeID == "" {
		rec.TradeID = id.NewAt(rec.ExecutedAt)
	}
	rec.Instrument = cell("instrument")
	rec.Session = cell("session")
	rec.SetupType = cell("setup_type")
	rec.HTFBias = cell("htf_bias")
	rec.Grade = cell("grade")
	rec.Direction = cell("direction")
	rec.Notes = cell("notes")
	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func parseFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return trade.Float(v), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func csvRow(t trade.Record) []string {
	var executed string
	if !t.ExecutedAt.IsZero() {
		executed = t.ExecutedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		t.TradeID,
		t.Instrument,
		string(t.Outcome),
		optFloat(t.RMultiple),
		executed,
		t.Session,
		t.SetupType,
		t.HTFBias,
		optBool(t.RulesFollowed),
		t.Grade,
		t.Direction,
		optInt(t.Confidence),
		optFloat(t.RiskPct),
		t.Notes,
	}
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
