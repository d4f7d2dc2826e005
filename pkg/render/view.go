package render

import (
	"strings"

	"github.com/goliatone/go-weatherform/pkg/page"
)

// Status summarises which panel a snapshot shows.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPredicted Status = "predicted"
	StatusError     Status = "error"
)

// FieldView is one form value with its display label.
type FieldView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ResultLine is one visible prediction display element.
type ResultLine struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is the renderer-neutral reading of a snapshot.
type View struct {
	Title    string       `json:"title"`
	Status   Status       `json:"status"`
	Layout   page.Layout  `json:"layout"`
	Endpoint string       `json:"endpoint,omitempty"`
	Fields   []FieldView  `json:"fields"`
	Result   []ResultLine `json:"result,omitempty"`
	Error    string       `json:"error,omitempty"`
	Notice   string       `json:"notice,omitempty"`
}

var resultLabels = map[string]string{
	page.IDPredictionDate:       "Date",
	page.IDPredictionTemp:       "Temperature",
	page.IDPredictionClimate:    "Condition",
	page.IDPredictionPrecip:     "Precipitation",
	page.IDPredictionVisibility: "Visibility",
	page.IDPredictionCloud:      "Cloud Cover",
	page.IDPredictionWind:       "Wind",
	page.IDCalculationTime:      "Calculation Time",
}

// ResultLabel returns the display label of a prediction element.
func ResultLabel(id string) string {
	if label, ok := resultLabels[id]; ok {
		return label
	}
	return id
}

// NewView reads snapshot. Result lines only include visible elements with
// text; the error message is reduced to plain text and the notice to the
// safe markup subset.
func NewView(snapshot page.Snapshot, options RenderOptions) View {
	view := View{
		Title:    strings.TrimSpace(options.Title),
		Layout:   snapshot.Layout,
		Endpoint: options.Endpoint,
		Notice:   SafeHTML(options.Notice),
		Status:   StatusIdle,
	}
	if view.Title == "" {
		view.Title = DefaultTitle
	}

	values := snapshot.FieldValues()
	if len(options.Fields) > 0 {
		for _, field := range options.Fields {
			view.Fields = append(view.Fields, FieldView{
				Name:  field.Name,
				Label: field.DisplayLabel(),
				Value: values[field.Name],
			})
		}
	} else {
		for _, id := range page.FormFieldIDs() {
			if _, ok := values[id]; !ok {
				continue
			}
			view.Fields = append(view.Fields, FieldView{Name: id, Label: id, Value: values[id]})
		}
	}

	switch {
	case snapshot.Visible(page.IDResult):
		view.Status = StatusPredicted
		ids := append(page.ResultFieldIDs(), page.ExtendedResultFieldIDs()...)
		for _, id := range ids {
			state := snapshot.Element(id)
			if !snapshot.Has(id) || !state.Visible || strings.TrimSpace(state.Text) == "" {
				continue
			}
			view.Result = append(view.Result, ResultLine{
				ID:    id,
				Label: ResultLabel(id),
				Value: PlainText(state.Text),
			})
		}
	case snapshot.Visible(page.IDError):
		view.Status = StatusError
		view.Error = PlainText(snapshot.ErrorMessage)
	}

	return view
}
