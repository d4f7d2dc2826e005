package weatherform

import (
	_ "embed"
)

// OperationID names the prediction operation in the embedded contract.
const OperationID = "predictWeather"

//go:embed api/openapi.yaml
var embeddedContract []byte

// ContractDocument returns a copy of the embedded OpenAPI document describing
// the prediction endpoint.
//
// Typical use serves it next to the endpoint:
//
//	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
//	  w.Header().Set("Content-Type", "application/yaml")
//	  w.Write(weatherform.ContractDocument())
//	})
func ContractDocument() []byte {
	out := make([]byte, len(embeddedContract))
	copy(out, embeddedContract)
	return out
}
