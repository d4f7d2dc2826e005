package page

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Layout selects which optional display elements a Document carries.
type Layout string

const (
	// LayoutBasic mirrors the original markup: date, temperature, condition,
	// precipitation and visibility.
	LayoutBasic Layout = "basic"
	// LayoutExtended adds cloud cover, wind and calculation time elements.
	LayoutExtended Layout = "extended"
)

// DocumentOption configures a Document at construction.
type DocumentOption func(*documentConfig)

type documentConfig struct {
	layout      Layout
	buttonLabel string
	values      map[string]string
	omit        map[string]struct{}
}

// WithLayout selects the document layout. LayoutExtended is the default.
func WithLayout(layout Layout) DocumentOption {
	return func(cfg *documentConfig) {
		if layout != "" {
			cfg.layout = layout
		}
	}
}

// WithButtonLabel overrides the submit control's initial label.
func WithButtonLabel(label string) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.buttonLabel = label
	}
}

// WithValues seeds form control values keyed by id.
func WithValues(values map[string]string) DocumentOption {
	return func(cfg *documentConfig) {
		if cfg.values == nil {
			cfg.values = make(map[string]string, len(values))
		}
		for id, value := range values {
			cfg.values[id] = value
		}
	}
}

// WithoutElements drops elements from the markup. Dropping a panel drops its
// nested elements too.
func WithoutElements(ids ...string) DocumentOption {
	return func(cfg *documentConfig) {
		if cfg.omit == nil {
			cfg.omit = make(map[string]struct{}, len(ids))
		}
		for _, id := range ids {
			cfg.omit[strings.TrimSpace(id)] = struct{}{}
		}
	}
}

// Document is an in-memory Page. It is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	layout   Layout
	order    []string
	nodes    map[string]*node
	children map[string][]*node
}

// Ensure Document implements Page.
var _ Page = (*Document)(nil)

type node struct {
	doc   *Document
	id    string
	class string
	state ElementState
}

// NewDocument builds the weather form markup: the eight form controls, the
// submit control, the result panel with its display elements and the error
// panel with its message element. Panels start hidden.
func NewDocument(options ...DocumentOption) *Document {
	cfg := documentConfig{
		layout:      LayoutExtended,
		buttonLabel: DefaultButtonLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	doc := &Document{
		layout:   cfg.layout,
		nodes:    make(map[string]*node),
		children: make(map[string][]*node),
	}

	for _, id := range FormFieldIDs() {
		doc.add(cfg, "", id, "", ElementState{Value: cfg.values[id], Visible: true})
	}
	doc.add(cfg, "", IDPredictButton, "", ElementState{Text: cfg.buttonLabel, Visible: true})

	if doc.add(cfg, "", IDResult, "result-card", ElementState{}) {
		for _, id := range ResultFieldIDs() {
			doc.add(cfg, IDResult, id, "", ElementState{Visible: true})
		}
		if cfg.layout == LayoutExtended {
			doc.add(cfg, IDResult, IDPredictionCloud, "", ElementState{Visible: true})
			doc.add(cfg, IDResult, IDPredictionWind, "", ElementState{Visible: true})
			doc.add(cfg, IDResult, IDCalculationTime, "", ElementState{})
		}
	}

	if doc.add(cfg, "", IDError, "error-card", ElementState{}) {
		doc.add(cfg, IDError, "", strings.TrimPrefix(SelectorErrorMessage, "."), ElementState{Visible: true})
	}

	return doc
}

func (d *Document) add(cfg documentConfig, parent, id, class string, state ElementState) bool {
	if id != "" {
		if _, skip := cfg.omit[id]; skip {
			return false
		}
	}
	n := &node{doc: d, id: id, class: class, state: state}
	if id != "" {
		d.nodes[id] = n
		d.order = append(d.order, id)
	}
	if parent != "" {
		d.children[parent] = append(d.children[parent], n)
	}
	return true
}

// Layout reports the document layout.
func (d *Document) Layout() Layout {
	return d.layout
}

// ElementByID implements Page.
func (d *Document) ElementByID(id string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Query implements Page.
func (d *Document) Query(parentID, selector string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, false
	}
	for _, child := range d.children[parentID] {
		if class, ok := strings.CutPrefix(selector, "."); ok {
			if hasClass(child.class, class) {
				return child, true
			}
			continue
		}
		if child.id == strings.TrimPrefix(selector, "#") {
			return child, true
		}
	}
	return nil, false
}

// MustElement returns the element with id or panics. Intended for tests and
// fixtures.
func (d *Document) MustElement(id string) Element {
	el, ok := d.ElementByID(id)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrElementNotFound, id))
	}
	return el
}

// Values returns the current form control values keyed by id.
func (d *Document) Values() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]string, len(FormFieldIDs()))
	for _, id := range FormFieldIDs() {
		if n, ok := d.nodes[id]; ok {
			out[id] = n.state.Value
		}
	}
	return out
}

// IDs returns the ids present in the document in markup order.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.order...)
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func (n *node) Value() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.state.Value
}

func (n *node) SetValue(value string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.state.Value = value
}

func (n *node) Text() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.state.Text
}

func (n *node) SetText(text string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.state.Text = text
}

func (n *node) Visible() bool {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.state.Visible
}

func (n *node) SetVisible(visible bool) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.state.Visible = visible
}

func (n *node) Disabled() bool {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.state.Disabled
}

func (n *node) SetDisabled(disabled bool) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.state.Disabled = disabled
}

func sortedKeys(m map[string]ElementState) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
