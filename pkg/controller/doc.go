// Package controller implements the weather form controller: it initialises
// the date control, reads the form into a prediction request, rejects dates
// that are not in the future, performs the prediction call through an
// injected handler and renders either the prediction or an error message.
//
// Exactly one of the result and error panels is visible once a submission
// completes, and the submit control is always restored to its idle state.
package controller
