package output

import (
	"bytes"
	"encoding/csv"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
)

// CSVFormatter writes the metrics as rows, followed by the breakdown table
// when the result has one.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value", "Unit"}); err != nil {
		return nil, err
	}
	if report.Result == nil {
		w.Flush()
		return buf.Bytes(), w.Error()
	}
	for _, m := range report.Result.Metrics() {
		value := m.Value.String()
		if m.Unit == domain.UnitText {
			value = m.Text
		} else if m.Unit == domain.UnitAmount || m.Unit == domain.UnitPercent {
			value = m.Value.StringFixed(2)
		}
		if err := w.Write([]string{m.Label, value, m.Unit}); err != nil {
			return nil, err
		}
	}
	if t := report.Result.Table(); t != nil {
		// blank line between metrics and breakdown
		if err := w.Write([]string{""}); err != nil {
			return nil, err
		}
		if err := w.Write(t.Headers); err != nil {
			return nil, err
		}
		if err := w.WriteAll(t.Rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
