package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgcontract "github.com/goliatone/go-weatherform/pkg/contract"
)

const extensionKey = "x-weatherform"

// Parser implements pkgcontract.Parser using kin-openapi.
type Parser struct{}

// Ensure the implementation satisfies the public interface.
var _ pkgcontract.Parser = (*Parser)(nil)

// New constructs a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse loads and validates the document, then extracts the request fields
// and response schema of operationID.
func (p *Parser) Parse(ctx context.Context, raw []byte, operationID string) (*pkgcontract.Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract parser: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract parser: validate: %w", err)
	}

	method, path, op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("contract parser: operation %q not found", operationID)
	}

	request := jsonSchema(op.RequestBody)
	if request == nil {
		return nil, fmt.Errorf("contract parser: operation %q has no JSON request body", operationID)
	}

	fields, err := extractFields(request)
	if err != nil {
		return nil, err
	}

	var validate pkgcontract.ResponseValidatorFunc
	if schema := successSchema(op.Responses); schema != nil {
		validate = responseValidator(schema)
	}

	return pkgcontract.New(operationID, method, path, fields, validate)
}

func findOperation(doc *openapi3.T, operationID string) (string, string, *openapi3.Operation) {
	if doc.Paths == nil {
		return "", "", nil
	}
	paths := make([]string, 0, doc.Paths.Len())
	for path := range doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return method, path, op
			}
		}
	}
	return "", "", nil
}

func jsonSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	mt, ok := body.Value.Content["application/json"]
	if !ok || mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

func successSchema(responses *openapi3.Responses) *openapi3.Schema {
	if responses == nil || responses.Len() == 0 {
		return nil
	}
	for _, status := range []string{"200", "2XX", "default"} {
		ref := responses.Value(status)
		if ref == nil || ref.Value == nil {
			continue
		}
		mt, ok := ref.Value.Content["application/json"]
		if !ok || mt == nil || mt.Schema == nil {
			continue
		}
		return mt.Schema.Value
	}
	return nil
}

func responseValidator(schema *openapi3.Schema) pkgcontract.ResponseValidatorFunc {
	return func(body []byte) error {
		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			return fmt.Errorf("contract: decode response: %w", err)
		}
		if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
			return fmt.Errorf("contract: response does not match schema: %w", err)
		}
		return nil
	}
}

func extractFields(schema *openapi3.Schema) ([]pkgcontract.Field, error) {
	if len(schema.Properties) == 0 {
		return nil, errors.New("contract parser: request schema has no properties")
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	fields := make([]pkgcontract.Field, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		ext := extensionMap(prop.Extensions)

		field := pkgcontract.Field{
			Name:        name,
			Label:       prop.Title,
			Description: prop.Description,
			Default:     stringify(prop.Default),
			InputType:   inputType(prop, ext),
			Order:       orderOf(ext),
		}
		if _, ok := required[name]; ok {
			field.Required = true
		}
		for _, option := range prop.Enum {
			field.Options = append(field.Options, stringify(option))
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func extensionMap(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	switch v := raw[extensionKey].(type) {
	case map[string]any:
		return v
	case json.RawMessage:
		var out map[string]any
		if err := json.Unmarshal(v, &out); err == nil {
			return out
		}
	}
	return nil
}

func inputType(prop *openapi3.Schema, ext map[string]any) string {
	if v, ok := ext["input"].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if len(prop.Enum) > 0 {
		return pkgcontract.InputSelect
	}
	if prop.Format == "date" {
		return pkgcontract.InputDate
	}
	if prop.Type != nil {
		for _, typ := range prop.Type.Slice() {
			if typ == openapi3.TypeNumber || typ == openapi3.TypeInteger {
				return pkgcontract.InputNumber
			}
		}
	}
	return pkgcontract.InputText
}

func orderOf(ext map[string]any) int {
	switch v := ext["order"].(type) {
	case float64:
		return int(math.Round(v))
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	}
	return math.MaxInt32
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
