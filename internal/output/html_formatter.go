package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
)

// HTMLFormatter produces a standalone HTML page for one report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"display": displayMetric,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report domain.Report) ([]byte, error) {
	data := struct {
		Title   string
		Metrics []domain.Metric
		Table   *domain.Table
	}{Title: title(report.Calculator)}
	if report.Result != nil {
		data.Metrics = report.Result.Metrics()
		data.Table = report.Result.Table()
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
