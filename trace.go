package styleable

import (
	"encoding/json"
)

// Trace captures how each origin contributed to the styled value of a key.
type Trace struct {
	Key     string       `json:"key"`
	Origin  Origin       `json:"origin"`
	Value   any          `json:"value,omitempty"`
	Found   bool         `json:"found"`
	Default any          `json:"default,omitempty"`
	Layers  []Provenance `json:"layers"`
}

// Provenance details the slot one origin holds for a traced key.
type Provenance struct {
	Origin Origin    `json:"origin"`
	State  SlotState `json:"-"`
	Value  any       `json:"value,omitempty"`
	Found  bool      `json:"found"`
}

// Trace reports, strongest origin first, what every origin holds for key and
// which one wins. Origin is OriginResolved when none holds a value.
func (b *Bean) Trace(key Key) Trace {
	trace := Trace{Key: keyName(key), Origin: OriginResolved}
	if key == nil {
		return trace
	}
	trace.Default = key.DefaultValue()
	trace.Layers = make([]Provenance, 0, numOrigins)
	for _, origin := range cascadeOrder {
		value, found := b.store.GetAt(origin, key)
		entry := Provenance{Origin: origin, Value: value, Found: found}
		switch {
		case !found:
			entry.State = SlotAbsent
		case value == nil:
			entry.State = SlotNull
		default:
			entry.State = SlotValue
		}
		trace.Layers = append(trace.Layers, entry)
		if found && !trace.Found {
			trace.Found = true
			trace.Origin = origin
			trace.Value = value
		}
	}
	return trace
}

// ToJSON serialises the trace for logging or inspection tools.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
