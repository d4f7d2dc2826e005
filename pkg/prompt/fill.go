package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-weatherform/pkg/contract"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prediction"
)

// MaxAttempts bounds how often a field is asked again after an invalid
// answer.
const MaxAttempts = 3

// Intro is printed before the first prompt.
const Intro = "Enter the weather parameters. Press enter to keep the value shown."

// Fill prompts for every field and writes the answers into the matching page
// controls. The current control value, or the field default when the control
// is empty, is offered as the default answer.
func Fill(ctx context.Context, driver Driver, fields []contract.Field, p page.Page) error {
	if driver == nil {
		return errors.New("prompt: driver is required")
	}
	if p == nil {
		return errors.New("prompt: page is required")
	}

	if err := driver.Info(ctx, Intro); err != nil {
		return err
	}

	for _, field := range fields {
		el, ok := p.ElementByID(field.Name)
		if !ok {
			return fmt.Errorf("prompt: field %q: %w", field.Name, page.ErrElementNotFound)
		}

		current := el.Value()
		if strings.TrimSpace(current) == "" {
			current = field.Default
		}

		answer, err := ask(ctx, driver, field, current)
		if err != nil {
			return err
		}
		el.SetValue(answer)
	}
	return nil
}

func ask(ctx context.Context, driver Driver, field contract.Field, current string) (string, error) {
	if len(field.Options) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      field.DisplayLabel(),
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, current),
			Help:         field.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", fmt.Errorf("prompt: field %q: selection %d out of range", field.Name, idx)
		}
		return field.Options[idx], nil
	}

	validate := validatorFor(field)
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		answer, err := driver.Input(ctx, InputConfig{
			Message:   field.DisplayLabel(),
			Default:   current,
			Help:      field.Description,
			Validator: validate,
		})
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		verr := validate(answer)
		if verr == nil {
			return answer, nil
		}
		if err := driver.Info(ctx, verr.Error()); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name)
}

func validatorFor(field contract.Field) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.DisplayLabel())
			}
			return nil
		}
		switch field.InputType {
		case contract.InputDate:
			if _, err := time.Parse(prediction.DateLayout, value); err != nil {
				return fmt.Errorf("%s must be a date like 2006-01-02", field.DisplayLabel())
			}
		case contract.InputNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("%s must be a number", field.DisplayLabel())
			}
		}
		return nil
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}
