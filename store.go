package styleable

// Store keeps one optional value per (key, origin) pair in a flat slice
// indexed by keyIndex*numOrigins + origin. Key indices come from a registry
// shared with every other store of the same bean type, so a store grows its
// slice on demand when a key registered after its creation is written.
//
// A Store is not safe for concurrent use.
type Store struct {
	registry      *KeyRegistry
	defaultOrigin Origin
	slots         []slot
	sizes         [numOrigins]int
}

// removal records a slot cleared by a bulk operation.
type removal struct {
	key    Key
	origin Origin
	old    slot
}

// NewStore creates a store over registry. defaultOrigin selects the tier used
// by Get and Set; OriginResolved makes Get resolve and Set fail.
func NewStore(registry *KeyRegistry, defaultOrigin Origin) *Store {
	if registry == nil {
		registry = NewKeyRegistry()
	}
	return &Store{
		registry:      registry,
		defaultOrigin: defaultOrigin,
		slots:         make([]slot, registry.Len()*numOrigins),
	}
}

// Registry returns the shared key registry.
func (s *Store) Registry() *KeyRegistry {
	return s.registry
}

// DefaultOrigin returns the tier used by Get and Set.
func (s *Store) DefaultOrigin() Origin {
	return s.defaultOrigin
}

// Get reads key at the store's default origin.
func (s *Store) Get(key Key) (any, bool) {
	return s.GetAt(s.defaultOrigin, key)
}

// Set writes key at the store's default origin.
func (s *Store) Set(key Key, value any) (any, bool, error) {
	return s.Put(s.defaultOrigin, key, value)
}

// GetAt reads the slot for exactly origin. OriginResolved resolves. It panics
// with an error wrapping ErrInvalidOrigin for any other origin outside the
// four tiers.
func (s *Store) GetAt(origin Origin, key Key) (any, bool) {
	mustReadable(origin)
	if origin == OriginResolved {
		return s.GetResolved(key)
	}
	if key == nil {
		return nil, false
	}
	index, ok := s.registry.lookupIndex(key)
	if !ok {
		return nil, false
	}
	sl := s.slotAt(index, origin)
	return sl.value, sl.present()
}

// GetResolved returns the value of the strongest origin holding one.
func (s *Store) GetResolved(key Key) (any, bool) {
	if key == nil {
		return nil, false
	}
	index, ok := s.registry.lookupIndex(key)
	if !ok {
		return nil, false
	}
	_, sl := s.resolve(index)
	return sl.value, sl.present()
}

// ResolvedOrigin returns the origin that provides the styled value of key.
func (s *Store) ResolvedOrigin(key Key) (Origin, bool) {
	if key == nil {
		return OriginResolved, false
	}
	index, ok := s.registry.lookupIndex(key)
	if !ok {
		return OriginResolved, false
	}
	origin, sl := s.resolve(index)
	return origin, sl.present()
}

// ContainsKey reports whether origin holds a value for key, including an
// explicit null.
func (s *Store) ContainsKey(origin Origin, key Key) bool {
	_, ok := s.GetAt(origin, key)
	return ok
}

// Put writes value at origin and returns the previous value held at that same
// origin. Nil stores an explicit null.
func (s *Store) Put(origin Origin, key Key, value any) (any, bool, error) {
	prev, err := s.put(origin, key, value)
	if err != nil {
		return nil, false, err
	}
	return prev.value, prev.present(), nil
}

func (s *Store) put(origin Origin, key Key, value any) (slot, error) {
	if err := checkWritable(origin); err != nil {
		return slot{}, err
	}
	if key == nil {
		return slot{}, ErrNilKey
	}
	if err := checkAssignable(origin, key, value); err != nil {
		return slot{}, err
	}
	index := s.registry.IndexOf(key)
	if registered, ok := s.registry.Key(index); ok {
		if err := checkRegistered(origin, registered, key); err != nil {
			return slot{}, err
		}
	}
	pos := s.ensure(index) + int(origin)
	prev := s.slots[pos]
	s.slots[pos] = slotOf(value)
	if !prev.present() {
		s.sizes[origin]++
	}
	return prev, nil
}

// Remove clears the slot for (origin, key) and returns the value it held.
func (s *Store) Remove(origin Origin, key Key) (any, bool, error) {
	prev, err := s.remove(origin, key)
	if err != nil {
		return nil, false, err
	}
	return prev.value, prev.present(), nil
}

func (s *Store) remove(origin Origin, key Key) (slot, error) {
	if err := checkWritable(origin); err != nil {
		return slot{}, err
	}
	if key == nil {
		return slot{}, ErrNilKey
	}
	index, ok := s.registry.lookupIndex(key)
	if !ok {
		return slot{}, nil
	}
	pos := index*numOrigins + int(origin)
	if pos >= len(s.slots) || !s.slots[pos].present() {
		return slot{}, nil
	}
	prev := s.slots[pos]
	s.slots[pos] = slot{}
	s.sizes[origin]--
	return prev, nil
}

// Size returns the number of keys holding a value at origin. For
// OriginResolved it counts keys holding a value at any origin. Invalid
// origins panic like GetAt.
func (s *Store) Size(origin Origin) int {
	if origin == OriginResolved {
		n := 0
		for index := 0; index < s.keyCapacity(); index++ {
			if _, sl := s.resolve(index); sl.present() {
				n++
			}
		}
		return n
	}
	mustReadable(origin)
	return s.sizes[origin]
}

// RemoveAll clears every slot at origin.
func (s *Store) RemoveAll(origin Origin) error {
	_, err := s.removeAll(origin)
	return err
}

func (s *Store) removeAll(origin Origin) ([]removal, error) {
	if err := checkWritable(origin); err != nil {
		return nil, err
	}
	if s.sizes[origin] == 0 {
		return nil, nil
	}
	var removed []removal
	for index := 0; index < s.keyCapacity(); index++ {
		pos := index*numOrigins + int(origin)
		if !s.slots[pos].present() {
			continue
		}
		key, _ := s.registry.Key(index)
		removed = append(removed, removal{key: key, origin: origin, old: s.slots[pos]})
		s.slots[pos] = slot{}
	}
	s.sizes[origin] = 0
	return removed, nil
}

// ResetStyledValues clears every origin except OriginUser, leaving only the
// values set by the user.
func (s *Store) ResetStyledValues() {
	s.resetStyledValues()
}

func (s *Store) resetStyledValues() []removal {
	var removed []removal
	for _, origin := range cascadeOrder {
		if origin == OriginUser {
			continue
		}
		cleared, _ := s.removeAll(origin)
		removed = append(removed, cleared...)
	}
	return removed
}

// Range calls fn for every key holding a value at origin, in index order,
// until fn returns false. OriginResolved ranges over styled values; invalid
// origins panic like GetAt.
func (s *Store) Range(origin Origin, fn func(key Key, value any) bool) {
	mustReadable(origin)
	for index := 0; index < s.keyCapacity(); index++ {
		var sl slot
		if origin == OriginResolved {
			_, sl = s.resolve(index)
		} else {
			sl = s.slots[index*numOrigins+int(origin)]
		}
		if !sl.present() {
			continue
		}
		key, ok := s.registry.Key(index)
		if !ok {
			continue
		}
		if !fn(key, sl.value) {
			return
		}
	}
}

// Keys returns the keys holding a value at origin in index order.
func (s *Store) Keys(origin Origin) []Key {
	var keys []Key
	s.Range(origin, func(key Key, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// View returns a live projection of origin.
func (s *Store) View(origin Origin) *View {
	return &View{store: s, origin: origin}
}

func (s *Store) resolve(index int) (Origin, slot) {
	base := index * numOrigins
	if base+numOrigins > len(s.slots) {
		return OriginResolved, slot{}
	}
	for _, origin := range cascadeOrder {
		if sl := s.slots[base+int(origin)]; sl.present() {
			return origin, sl
		}
	}
	return OriginResolved, slot{}
}

func (s *Store) slotAt(index int, origin Origin) slot {
	pos := index*numOrigins + int(origin)
	if pos >= len(s.slots) {
		return slot{}
	}
	return s.slots[pos]
}

// keyCapacity returns the number of keys the slice currently has room for.
func (s *Store) keyCapacity() int {
	return len(s.slots) / numOrigins
}

// ensure grows the slice so index fits and returns the index's base position.
func (s *Store) ensure(index int) int {
	base := index * numOrigins
	need := base + numOrigins
	if need <= len(s.slots) {
		return base
	}
	if need <= cap(s.slots) {
		s.slots = s.slots[:need]
		return base
	}
	capacity := max(need, 2*len(s.slots))
	grown := make([]slot, need, capacity)
	copy(grown, s.slots)
	s.slots = grown
	return base
}
