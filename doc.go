// Package styleable implements the styleable property cascade of a drawing
// framework: a per-object store that keeps, for every styleable key, one
// optional value per origin and resolves the effective value by origin
// precedence.
//
// Origins, strongest first:
//
//	inline > author > user > user-agent
//
// Layers:
//
//	KeyRegistry -> Store -> ObservableStore -> Bean
//
// KeyRegistry hands out append-only slot indices per BeanType, so every bean
// of a type addresses its values by array offset. Store keeps the slots and
// resolves values. ObservableStore reports mutations: invalidation listeners
// hear about every origin, change listeners only about the user origin.
// Bean is the typed facade figures embed; it validates value types and
// origins and falls back to key defaults on reads.
//
// Known limitation: key indices are never reclaimed. A process that keeps
// creating keys with fresh names grows every registry without bound, and
// every store of that type grows its slice when such a key is written.
package styleable
