package page

import (
	"errors"
	"fmt"
)

// Prefill writes values into the form controls of p. Empty values are skipped
// unless overwrite is set; unknown ids are reported together.
func Prefill(p Page, values map[string]string, overwrite bool) error {
	var errs []error
	for _, id := range FormFieldIDs() {
		value, ok := values[id]
		if !ok {
			continue
		}
		el, found := p.ElementByID(id)
		if !found {
			errs = append(errs, fmt.Errorf("%w: %q", ErrElementNotFound, id))
			continue
		}
		if value == "" && !overwrite {
			continue
		}
		el.SetValue(value)
	}
	for id := range values {
		if !isFormField(id) {
			errs = append(errs, fmt.Errorf("page: %q is not a form field", id))
		}
	}
	return errors.Join(errs...)
}

// FillEmpty writes values only into controls that are currently empty.
func FillEmpty(p Page, values map[string]string) {
	for _, id := range FormFieldIDs() {
		value, ok := values[id]
		if !ok || value == "" {
			continue
		}
		if el, found := p.ElementByID(id); found && el.Value() == "" {
			el.SetValue(value)
		}
	}
}

func isFormField(id string) bool {
	for _, field := range FormFieldIDs() {
		if field == id {
			return true
		}
	}
	return false
}
