package stylesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	styleable "github.com/goliatone/go-styleable"
)

// Document is the serialized form of a stylesheet set:
//
//	[[sheets]]
//	name = "theme"
//	origin = "author"
//
//	[[sheets.rules]]
//	name = "wide"
//	when = "stroke_width > 2"
//	declarations = { fill = "red" }
type Document struct {
	Sheets []SheetDocument `json:"sheets" toml:"sheets"`
}

// SheetDocument is one serialized sheet. An empty origin means author.
type SheetDocument struct {
	Name     string         `json:"name" toml:"name"`
	Origin   string         `json:"origin,omitempty" toml:"origin"`
	Priority int            `json:"priority,omitempty" toml:"priority"`
	Rules    []RuleDocument `json:"rules" toml:"rules"`
}

// RuleDocument is one serialized rule. Declaration values may be strings,
// numbers or booleans; they are handed to converters as text.
type RuleDocument struct {
	Name         string         `json:"name" toml:"name"`
	When         string         `json:"when,omitempty" toml:"when"`
	Declarations map[string]any `json:"declarations" toml:"declarations"`
}

// PreHook lets callers mutate or normalize the payload before decoding.
type PreHook func(source string, payload map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the decoded document.
type PostHook func(source string, doc *Document) error

// DecoderOption configures decoding.
type DecoderOption func(*decoder)

type decoder struct {
	source       string
	preHooks     []PreHook
	postHooks    []PostHook
	configureDec []func(*json.Decoder)
}

// WithSource names the payload in error messages.
func WithSource(source string) DecoderOption {
	return func(d *decoder) {
		d.source = source
	}
}

// WithPreHook applies hook prior to decoding.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *decoder) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook(hook PostHook) DecoderOption {
	return func(d *decoder) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDisallowUnknownFields rejects payload fields the document does not
// define.
func WithDisallowUnknownFields() DecoderOption {
	return func(d *decoder) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// Decode converts a generic payload into a validated Set.
func Decode(payload map[string]any, opts ...DecoderOption) (*Set, error) {
	d := &decoder{source: "payload"}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	doc, err := d.decode(payload)
	if err != nil {
		return nil, err
	}
	sheets, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("stylesheet: %s: %w", d.source, err)
	}
	return NewSet(sheets...)
}

// DecodeJSON decodes a JSON document into a Set.
func DecodeJSON(data []byte, opts ...DecoderOption) (*Set, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("stylesheet: parse json: %w", err)
	}
	return Decode(payload, opts...)
}

// ParseTOML decodes a TOML document into a Set.
func ParseTOML(data []byte, opts ...DecoderOption) (*Set, error) {
	var payload map[string]any
	if err := toml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("stylesheet: parse toml: %w", err)
	}
	return Decode(payload, opts...)
}

func (d *decoder) decode(payload map[string]any) (*Document, error) {
	if payload == nil {
		return nil, fmt.Errorf("stylesheet: payload is nil for %s", d.source)
	}
	current, err := clonePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("stylesheet: clone payload for %s: %w", d.source, err)
	}
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(d.source, current)
		if err != nil {
			return nil, fmt.Errorf("stylesheet: pre-hook for %s failed: %w", d.source, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("stylesheet: marshal payload for %s: %w", d.source, err)
	}
	dec := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range d.configureDec {
		configure(dec)
	}
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("stylesheet: decode %s: %w", d.source, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(d.source, &doc); err != nil {
			return nil, fmt.Errorf("stylesheet: post-hook for %s failed: %w", d.source, err)
		}
	}
	return &doc, nil
}

func clonePayload(payload map[string]any) (map[string]any, error) {
	buffer, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(buffer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Build converts the document into sheets. Declarations of a rule are
// ordered by name.
func (doc *Document) Build() ([]Sheet, error) {
	sheets := make([]Sheet, 0, len(doc.Sheets))
	for _, sd := range doc.Sheets {
		origin := styleable.OriginAuthor
		if strings.TrimSpace(sd.Origin) != "" {
			parsed, err := styleable.ParseOrigin(sd.Origin)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sd.Name, err)
			}
			origin = parsed
		}
		sheet := Sheet{Name: sd.Name, Origin: origin, Priority: sd.Priority}
		for _, rd := range sd.Rules {
			rule := Rule{Name: rd.Name, When: rd.When}
			names := make([]string, 0, len(rd.Declarations))
			for name := range rd.Declarations {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				text, err := declarationText(rd.Declarations[name])
				if err != nil {
					return nil, fmt.Errorf("sheet %q rule %q property %q: %w", sd.Name, rd.Name, name, err)
				}
				rule.Declarations = append(rule.Declarations, Declaration{Name: name, Value: text})
			}
			sheet.Rules = append(sheet.Rules, rule)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func declarationText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unsupported declaration value %T", value)
	}
}
