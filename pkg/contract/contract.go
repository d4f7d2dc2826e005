package contract

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Input types a field can request from a renderer or prompt.
const (
	InputText   = "text"
	InputNumber = "number"
	InputDate   = "date"
	InputSelect = "select"
)

// Field describes one request property as a form control.
type Field struct {
	Name        string
	Label       string
	Description string
	Default     string
	InputType   string
	Options     []string
	Required    bool
	Order       int
}

// DisplayLabel returns the label, falling back to the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// ResponseValidatorFunc validates a raw response body.
type ResponseValidatorFunc func(body []byte) error

// Contract is the parsed description of the prediction operation.
type Contract struct {
	OperationID string
	Method      string
	Path        string

	fields   []Field
	validate ResponseValidatorFunc
}

// Parser turns a raw OpenAPI document into a Contract for an operation.
type Parser interface {
	Parse(ctx context.Context, raw []byte, operationID string) (*Contract, error)
}

// New builds a Contract. Fields are sorted by Order, then Name.
func New(operationID, method, path string, fields []Field, validate ResponseValidatorFunc) (*Contract, error) {
	if strings.TrimSpace(operationID) == "" {
		return nil, errors.New("contract: operation id is required")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("contract: path is required")
	}

	sorted := make([]Field, len(fields))
	for i, field := range fields {
		field.Options = append([]string(nil), field.Options...)
		sorted[i] = field
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Name < sorted[j].Name
	})

	return &Contract{
		OperationID: operationID,
		Method:      strings.ToUpper(method),
		Path:        path,
		fields:      sorted,
		validate:    validate,
	}, nil
}

// Fields returns the request fields in form order.
func (c *Contract) Fields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	for i, field := range c.fields {
		field.Options = append([]string(nil), field.Options...)
		out[i] = field
	}
	return out
}

// Field looks up a request field by name.
func (c *Contract) Field(name string) (Field, bool) {
	for _, field := range c.Fields() {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Defaults returns the declared default values keyed by field name. Fields
// without a default are omitted.
func (c *Contract) Defaults() map[string]string {
	out := make(map[string]string)
	for _, field := range c.Fields() {
		if field.Default != "" {
			out[field.Name] = field.Default
		}
	}
	return out
}

// ValidateResponse checks a response body against the contract. A contract
// without a response schema accepts everything.
func (c *Contract) ValidateResponse(body []byte) error {
	if c == nil || c.validate == nil {
		return nil
	}
	return c.validate(body)
}
