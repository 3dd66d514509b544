package styleable

import (
	"fmt"
	"strings"
)

// Origin identifies the precedence tier a value was written at. Higher
// origins override lower origins when resolving the styled value.
type Origin int8

const (
	// OriginResolved is not a storage tier. It selects the styled composite
	// (the value of the strongest origin that holds one) for reads and is
	// rejected for writes.
	OriginResolved Origin = iota - 1
	// OriginUserAgent holds default stylesheet values (weakest).
	OriginUserAgent
	// OriginUser holds values set programmatically or by the end user.
	OriginUser
	// OriginAuthor holds values applied from author stylesheets.
	OriginAuthor
	// OriginInline holds values from an inline style attribute (strongest).
	OriginInline
)

// numOrigins is the number of storage tiers per key.
const numOrigins = 4

var cascadeOrder = [numOrigins]Origin{OriginInline, OriginAuthor, OriginUser, OriginUserAgent}

// Origins returns the storage tiers ordered from strongest to weakest.
func Origins() []Origin {
	out := make([]Origin, numOrigins)
	copy(out, cascadeOrder[:])
	return out
}

// Valid reports whether o names a storage tier.
func (o Origin) Valid() bool {
	return o >= OriginUserAgent && o <= OriginInline
}

func (o Origin) String() string {
	switch o {
	case OriginResolved:
		return "resolved"
	case OriginUserAgent:
		return "user-agent"
	case OriginUser:
		return "user"
	case OriginAuthor:
		return "author"
	case OriginInline:
		return "inline"
	default:
		return fmt.Sprintf("origin(%d)", int8(o))
	}
}

// ParseOrigin converts a textual origin into an Origin. The empty string and
// "styled" map to OriginResolved.
func ParseOrigin(value string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "user-agent", "user_agent", "useragent":
		return OriginUserAgent, nil
	case "user":
		return OriginUser, nil
	case "author":
		return OriginAuthor, nil
	case "inline":
		return OriginInline, nil
	case "", "resolved", "styled":
		return OriginResolved, nil
	default:
		return OriginResolved, fmt.Errorf("%w: %q", ErrInvalidOrigin, value)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) {
	if !o.Valid() && o != OriginResolved {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrigin, int8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Origin) UnmarshalText(text []byte) error {
	parsed, err := ParseOrigin(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func checkWritable(o Origin) error {
	if o == OriginResolved {
		return ErrResolvedWrite
	}
	if !o.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrigin, int8(o))
	}
	return nil
}
