package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-weatherform/pkg/contract"
	"github.com/goliatone/go-weatherform/pkg/page"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	inputConfigs []InputConfig
	selects      []SelectConfig
	infoMessages []string
	inputPos     int
	selectPos    int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func testFields() []contract.Field {
	return []contract.Field{
		{Name: "date", Label: "Date", InputType: contract.InputDate, Required: true},
		{Name: "humidity", Label: "Humidity (%)", InputType: contract.InputNumber, Default: "50"},
		{Name: "climate_condition", Label: "Condition", InputType: contract.InputSelect, Default: "Partly Cloudy", Options: []string{"Clear", "Partly Cloudy", "Rain"}},
	}
}

func TestFillWritesAnswersIntoPage(t *testing.T) {
	doc := page.NewDocument(page.WithValues(map[string]string{"date": "2025-01-02"}))
	driver := &stubDriver{
		inputs:    []string{"2025-01-03", " 65 "},
		selectIdx: []int{2},
	}

	if err := Fill(context.Background(), driver, testFields(), doc); err != nil {
		t.Fatalf("fill: %v", err)
	}

	values := doc.Values()
	got := map[string]string{
		"date":              values["date"],
		"humidity":          values["humidity"],
		"climate_condition": values["climate_condition"],
	}
	want := map[string]string{
		"date":              "2025-01-03",
		"humidity":          "65",
		"climate_condition": "Rain",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if driver.inputConfigs[0].Default != "2025-01-02" {
		t.Fatalf("expected current value as default, got %q", driver.inputConfigs[0].Default)
	}
	if driver.inputConfigs[1].Default != "50" {
		t.Fatalf("expected contract default for empty control, got %q", driver.inputConfigs[1].Default)
	}
	if driver.selects[0].DefaultIndex != 1 {
		t.Fatalf("expected default selection index 1, got %d", driver.selects[0].DefaultIndex)
	}
	if len(driver.infoMessages) == 0 || driver.infoMessages[0] != Intro {
		t.Fatalf("expected intro message, got %v", driver.infoMessages)
	}
}

func TestFillRepromptsInvalidAnswers(t *testing.T) {
	doc := page.NewDocument()
	driver := &stubDriver{
		inputs:    []string{"tomorrow", "2025-01-03", "lots", "70"},
		selectIdx: []int{0},
	}

	if err := Fill(context.Background(), driver, testFields(), doc); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := []string{
		Intro,
		"Date must be a date like 2006-01-02",
		"Humidity (%) must be a number",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Values()["humidity"]; got != "70" {
		t.Fatalf("expected humidity 70, got %q", got)
	}
}

func TestFillGivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "", ""}}

	err := Fill(context.Background(), driver, testFields()[:1], page.NewDocument())
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestFillPropagatesAbort(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}

	err := Fill(context.Background(), driver, testFields(), page.NewDocument())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFillReportsMissingControls(t *testing.T) {
	doc := page.NewDocument(page.WithoutElements("humidity"))
	driver := &stubDriver{inputs: []string{"2025-01-03"}}

	err := Fill(context.Background(), driver, testFields(), doc)
	if !errors.Is(err, page.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
}
