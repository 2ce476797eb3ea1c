package active

// Store holds the chart's current selection. It implements [Handler].
//
// A Store is not safe for concurrent use; events are applied one at a time
// by the goroutine that renders the chart.
type Store struct {
	cur     Selection
	version uint64
}

// NewStore returns an idle store.
func NewStore() *Store { return &Store{} }

// Enter activates the selection described by h. Entering while already
// active replaces the selection atomically.
func (s *Store) Enter(h Hover) { s.set(h.selection()) }

// Move behaves like Enter. Repeating an identical hover changes nothing.
func (s *Store) Move(h Hover) { s.set(h.selection()) }

// Leave resets the store to Idle from any state.
func (s *Store) Leave() { s.set(Selection{}) }

// Current returns a copy of the latest selection.
func (s *Store) Current() Selection { return s.cur.Clone() }

// Version increments on every state change. Callers compare versions to
// skip renders that would produce identical output.
func (s *Store) Version() uint64 { return s.version }

func (s *Store) set(sel Selection) {
	if s.cur.Equal(sel) {
		return
	}
	s.cur = sel
	s.version++
}
