package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Response is the body returned by the prediction endpoint. Prediction is set
// when Success is true; Error may carry a server message otherwise.
type Response struct {
	Success    bool        `json:"success"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Prediction is the canonical prediction record. Both response shapes served
// by the backend decode into it.
type Prediction struct {
	Date                string           `json:"date"`
	PredictedTemp       float64          `json:"predicted_temp"`
	Condition           string           `json:"climate_condition"`
	PredictedPrecip     float64          `json:"predicted_precip"`
	PredictedVisibility float64          `json:"predicted_visibility"`
	PredictedCloud      *float64         `json:"predicted_cloud,omitempty"`
	PredictedWindSpeed  *float64         `json:"predicted_wind_speed,omitempty"`
	InputParameters     *InputParameters `json:"input_parameters,omitempty"`
	CalculationTime     string           `json:"calculation_time,omitempty"`
}

// InputParameters echoes request values the backend used for the prediction.
type InputParameters struct {
	WindDirection *Number `json:"wind_direction,omitempty"`
}

// WindDirection returns the echoed wind direction, if any.
func (p Prediction) WindDirection() (Number, bool) {
	if p.InputParameters == nil || p.InputParameters.WindDirection == nil {
		return 0, false
	}
	return *p.InputParameters.WindDirection, true
}

// UnmarshalJSON accepts the condition under `climate_condition` or the legacy
// `likely_climate` key. The former wins when both are present and non-empty.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	type plain Prediction
	aux := struct {
		*plain
		LikelyClimate string `json:"likely_climate"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if strings.TrimSpace(p.Condition) == "" {
		p.Condition = aux.LikelyClimate
	}
	return nil
}

// Number is a float that decodes from a JSON number or a numeric string. The
// backend echoes form values, which arrive as strings.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("prediction: number %q: %w", raw, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float64 returns the value as a float64.
func (n Number) Float64() float64 {
	return float64(n)
}
