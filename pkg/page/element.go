package page

import "errors"

// ErrElementNotFound reports a lookup for an id or selector that is absent.
var ErrElementNotFound = errors.New("page: element not found")

// Element is the subset of element behaviour the controller relies on.
type Element interface {
	Value() string
	SetValue(value string)
	Text() string
	SetText(text string)
	Visible() bool
	SetVisible(visible bool)
	Disabled() bool
	SetDisabled(disabled bool)
}

// Page resolves elements. Query looks up an element nested inside parentID;
// selectors are either ".class" or a bare id.
type Page interface {
	ElementByID(id string) (Element, bool)
	Query(parentID, selector string) (Element, bool)
}

// ElementState is a point-in-time copy of an element's properties.
type ElementState struct {
	Value    string `json:"value,omitempty"`
	Text     string `json:"text,omitempty"`
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled,omitempty"`
}
