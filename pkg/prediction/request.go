package prediction

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO calendar date format used by the date control.
const DateLayout = "2006-01-02"

// Field names shared by the request payload and the form controls.
const (
	FieldDate             = "date"
	FieldCurrentTemp      = "current_temp"
	FieldHumidity         = "humidity"
	FieldPressure         = "pressure"
	FieldWindSpeed        = "wind_speed"
	FieldWindDirection    = "wind_direction"
	FieldCloudCover       = "cloud_cover"
	FieldClimateCondition = "climate_condition"
)

// FieldNames lists the request fields in form order.
func FieldNames() []string {
	return []string{
		FieldDate,
		FieldCurrentTemp,
		FieldHumidity,
		FieldPressure,
		FieldWindSpeed,
		FieldWindDirection,
		FieldCloudCover,
		FieldClimateCondition,
	}
}

// Request is the JSON body posted to the prediction endpoint. Values are kept
// as the text read from the form so the backend applies its own parsing and
// defaults.
type Request struct {
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	CurrentTemp      string `json:"current_temp"`
	Humidity         string `json:"humidity"`
	Pressure         string `json:"pressure"`
	WindSpeed        string `json:"wind_speed"`
	WindDirection    string `json:"wind_direction"`
	CloudCover       string `json:"cloud_cover"`
	ClimateCondition string `json:"climate_condition"`
}

// RequestFromValues builds a Request from values keyed by field name. Missing
// keys produce empty strings.
func RequestFromValues(values map[string]string) Request {
	return Request{
		Date:             values[FieldDate],
		CurrentTemp:      values[FieldCurrentTemp],
		Humidity:         values[FieldHumidity],
		Pressure:         values[FieldPressure],
		WindSpeed:        values[FieldWindSpeed],
		WindDirection:    values[FieldWindDirection],
		CloudCover:       values[FieldCloudCover],
		ClimateCondition: values[FieldClimateCondition],
	}
}

// Values returns the request keyed by field name.
func (r Request) Values() map[string]string {
	return map[string]string{
		FieldDate:             r.Date,
		FieldCurrentTemp:      r.CurrentTemp,
		FieldHumidity:         r.Humidity,
		FieldPressure:         r.Pressure,
		FieldWindSpeed:        r.WindSpeed,
		FieldWindDirection:    r.WindDirection,
		FieldCloudCover:       r.CloudCover,
		FieldClimateCondition: r.ClimateCondition,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the request shape: the date must be present and formatted
// as an ISO calendar date. Whether the date lies in the future depends on a
// clock and is checked by the controller.
func (r Request) Validate() error {
	err := requestValidator().Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("prediction: validate request: %w", err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("prediction: invalid request: %s", strings.Join(parts, ", "))
}
