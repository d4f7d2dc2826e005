package page

import "github.com/goliatone/go-weatherform/pkg/prediction"

// Form control ids. They match the request field names.
const (
	IDDate             = prediction.FieldDate
	IDCurrentTemp      = prediction.FieldCurrentTemp
	IDHumidity         = prediction.FieldHumidity
	IDPressure         = prediction.FieldPressure
	IDWindSpeed        = prediction.FieldWindSpeed
	IDWindDirection    = prediction.FieldWindDirection
	IDCloudCover       = prediction.FieldCloudCover
	IDClimateCondition = prediction.FieldClimateCondition
)

// Control and panel ids.
const (
	IDPredictButton        = "predict-btn"
	IDResult               = "result"
	IDError                = "error"
	IDPredictionDate       = "prediction-date"
	IDPredictionTemp       = "prediction-temp"
	IDPredictionClimate    = "prediction-climate"
	IDPredictionPrecip     = "prediction-precip"
	IDPredictionVisibility = "prediction-visibility"
	IDPredictionCloud      = "prediction-cloud"
	IDPredictionWind       = "prediction-wind"
	IDCalculationTime      = "calculation-time"
)

// SelectorErrorMessage addresses the message element inside the error panel.
const SelectorErrorMessage = ".error-message"

// DefaultButtonLabel is the idle label of the submit control.
const DefaultButtonLabel = "Predict Weather"

// FormFieldIDs lists the form controls in document order.
func FormFieldIDs() []string {
	return prediction.FieldNames()
}

// ResultFieldIDs lists the prediction display elements shared by every layout.
func ResultFieldIDs() []string {
	return []string{
		IDPredictionDate,
		IDPredictionTemp,
		IDPredictionClimate,
		IDPredictionPrecip,
		IDPredictionVisibility,
	}
}

// ExtendedResultFieldIDs lists the display elements only the extended layout
// carries.
func ExtendedResultFieldIDs() []string {
	return []string{
		IDPredictionCloud,
		IDPredictionWind,
		IDCalculationTime,
	}
}
