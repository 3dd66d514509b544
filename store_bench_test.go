package styleable

import (
	"fmt"
	"testing"
)

func BenchmarkResolveAcrossOrigins(b *testing.B) {
	keys := make([]Key, 64)
	for i := range keys {
		keys[i] = NewKey(fmt.Sprintf("prop_%d", i), 0)
	}
	typ := NewBeanType("bench", keys...)
	bean := NewBean(typ)
	for i, key := range keys {
		origin := Origins()[i%numOrigins]
		if _, _, err := bean.SetStyled(origin, key, i); err != nil {
			b.Fatalf("set: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if bean.GetStyled(keys[i%len(keys)]) == nil {
			b.Fatalf("unexpected null")
		}
	}
}

func BenchmarkTrace(b *testing.B) {
	key := NewKey("fill", "none")
	bean := NewBean(NewBeanType("bench-trace", key))
	for _, origin := range Origins() {
		if _, _, err := bean.SetStyled(origin, key, origin.String()); err != nil {
			b.Fatalf("set: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if trace := bean.Trace(key); !trace.Found {
			b.Fatalf("trace lost the value")
		}
	}
}
