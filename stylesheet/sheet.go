package stylesheet

import (
	"errors"
	"fmt"
	"sort"

	styleable "github.com/goliatone/go-styleable"
)

var (
	// ErrSheetNameRequired indicates a sheet without a name.
	ErrSheetNameRequired = errors.New("stylesheet: name must be provided")
	// ErrDuplicateSheetName indicates two sheets with the same name in a set.
	ErrDuplicateSheetName = errors.New("stylesheet: names must be unique")
	// ErrSheetOrigin indicates a sheet targeting an origin other than
	// user-agent or author. Inline values are written by ApplyInline.
	ErrSheetOrigin = errors.New("stylesheet: origin must be user-agent or author")
)

// Declaration assigns the textual value Value to the property Name.
type Declaration struct {
	Name  string
	Value string
}

// Rule applies its declarations to beans for which When evaluates to true.
// An empty When matches every bean.
type Rule struct {
	Name         string
	When         string
	Declarations []Declaration
}

// Sheet is an ordered list of rules written at one origin. Later rules win
// over earlier ones within a sheet; among sheets of the same origin, higher
// Priority wins.
type Sheet struct {
	Name     string
	Origin   styleable.Origin
	Priority int
	Rules    []Rule
}

// Set is a validated group of sheets ordered from weakest to strongest, the
// order in which they are written.
type Set struct {
	sheets []Sheet
}

// NewSet validates sheets and orders them for application.
func NewSet(sheets ...Sheet) (*Set, error) {
	seen := make(map[string]struct{}, len(sheets))
	ordered := make([]Sheet, len(sheets))
	for i, sheet := range sheets {
		if sheet.Name == "" {
			return nil, ErrSheetNameRequired
		}
		if _, ok := seen[sheet.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSheetName, sheet.Name)
		}
		seen[sheet.Name] = struct{}{}
		if sheet.Origin != styleable.OriginUserAgent && sheet.Origin != styleable.OriginAuthor {
			return nil, fmt.Errorf("%w: %s has %s", ErrSheetOrigin, sheet.Name, sheet.Origin)
		}
		ordered[i] = cloneSheet(sheet)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Origin != ordered[j].Origin {
			return ordered[i].Origin < ordered[j].Origin
		}
		return ordered[i].Priority < ordered[j].Priority
	})
	return &Set{sheets: ordered}, nil
}

// Sheets returns a copy of the ordered sheets.
func (s *Set) Sheets() []Sheet {
	if s == nil {
		return nil
	}
	out := make([]Sheet, len(s.sheets))
	for i := range s.sheets {
		out[i] = cloneSheet(s.sheets[i])
	}
	return out
}

// Len returns the number of sheets.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sheets)
}

// Origins returns the distinct origins the set writes, weakest first.
func (s *Set) Origins() []styleable.Origin {
	if s == nil {
		return nil
	}
	var out []styleable.Origin
	for _, sheet := range s.sheets {
		if len(out) == 0 || out[len(out)-1] != sheet.Origin {
			out = append(out, sheet.Origin)
		}
	}
	return out
}

func cloneSheet(sheet Sheet) Sheet {
	out := sheet
	out.Rules = make([]Rule, len(sheet.Rules))
	for i, rule := range sheet.Rules {
		out.Rules[i] = rule
		out.Rules[i].Declarations = append([]Declaration(nil), rule.Declarations...)
	}
	return out
}
