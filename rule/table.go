package rule

// Entry is the result of a forward table lookup: the set of successor
// states consistent with a (current, neighbourhood) descriptor, and the
// single forced value when that set is a singleton.
type Entry struct {
	PossibleSuccessor StateSet
	ImpliedSuccessor  State
}

// Table is the capability set every rule family exposes to the search
// engine, per spec §9: "a small capability set {descriptor(cell) -> u32;
// transition_table(descriptor) -> entry; is_generations -> bool;
// num_states -> u8}". Forward/Backward/ImpliedNeighbours are the three
// table-entry fields of §4.1 (possible_successor, possible_predecessor
// _current, implied_neighbours) exposed as lookup methods instead of a
// single flattened struct, since the predecessor and implied-neighbour
// directions need a known successor that Forward doesn't have.
type Table interface {
	// NumStates is the k of a k-state Generations rule, or 2 for a
	// classic 2-state rule.
	NumStates() int
	// IsGenerations reports whether this table has Dying stages.
	IsGenerations() bool
	// Neighborhood is the neighbour shape this table was built for.
	Neighborhood() Neighborhood
	// Forward returns the possible successor states of a cell given its
	// current state (Unknown meaning "any state is possible") and its 8
	// neighbour slots (Unknown for undecided, Dead for inactive slots).
	Forward(current State, neighbours [8]State) Entry
	// Backward returns the possible current states of a cell given its
	// known successor and its 8 neighbour slots.
	Backward(successor State, neighbours [8]State) StateSet
	// ImpliedNeighbours returns, for a cell with known current and known
	// successor, the forced value of each Unknown neighbour slot that is
	// forced to a single value by every resolution consistent with
	// (current, successor); slots that aren't forced (or aren't Unknown)
	// report Unknown.
	ImpliedNeighbours(current, successor State, neighbours [8]State) [8]State
}

// transitionFunc computes whether a cell becomes Alive next generation,
// given whether it is currently Alive and the aliveness pattern of its 8
// Moore slots (inactive/hex/von-Neumann-disabled slots are always false).
// This single function is where outer-totalistic, isotropic non-totalistic,
// and MAP rules differ; everything else in this file is shared.
type transitionFunc func(currentAlive bool, pattern [8]bool) bool

// descriptorKey packs (current, neighbours) into a map key. The State code
// for Unknown is 31 so every field fits 5 bits; this is the packed integer
// descriptor of spec §4.1, kept as a named uint64 built in one place rather
// than hand rolled bit-twiddling at every call site.
type descriptorKey uint64

func packDescriptor(current State, neighbours [8]State) descriptorKey {
	code := func(s State) uint64 {
		if s == Unknown {
			return 31
		}
		return uint64(s)
	}
	d := code(current)
	for i, ns := range neighbours {
		d |= code(ns) << uint(5+5*i)
	}
	return descriptorKey(d)
}

// genericTable implements Table in terms of a transitionFunc and a
// Neighborhood, memoizing lookups in maps built lazily on first use. It is
// the only Table implementation: NewOuterTotalistic, NewIsotropic and NewMAP
// each return one, 2-state or Generations (states > 2), matching the "tagged
// variant with an inner table" design from spec §9 - no deep rule-backend
// hierarchy, just different transitionFunc closures feeding one engine.
type genericTable struct {
	states int
	nb     Neighborhood
	fn     transitionFunc

	forwardCache  map[descriptorKey]Entry
	backwardCache map[descriptorKey]StateSet
	impliedCache  map[descriptorKey][8]State
}

func newGenericTable(states int, nb Neighborhood, fn transitionFunc) *genericTable {
	return &genericTable{
		states:        states,
		nb:            nb,
		fn:            fn,
		forwardCache:  make(map[descriptorKey]Entry),
		backwardCache: make(map[descriptorKey]StateSet),
		impliedCache:  make(map[descriptorKey][8]State),
	}
}

func (t *genericTable) NumStates() int            { return t.states }
func (t *genericTable) IsGenerations() bool       { return t.states > 2 }
func (t *genericTable) Neighborhood() Neighborhood { return t.nb }

// successorOf computes the deterministic/B-S-driven successor of a cell
// given a concrete current state and a concrete 8-slot aliveness pattern.
func (t *genericTable) successorOf(current State, pattern [8]bool) State {
	switch {
	case current == Dead:
		if t.fn(false, pattern) {
			return Alive
		}
		return Dead
	case current == Alive:
		if t.fn(true, pattern) {
			return Alive
		}
		if t.states > 2 {
			return State(2)
		}
		return Dead
	default: // Dying stage
		if int(current) >= t.states-1 {
			return Dead
		}
		return current + 1
	}
}

// baseline returns the indices of Moore slots that are active for
// this neighbourhood and currently Unknown, plus the fixed aliveness of
// every other slot (inactive slots are always dead; known slots are alive
// iff their state is Alive).
func (t *genericTable) baseline(neighbours [8]State) (fixed [8]bool, unknownSlots []int) {
	_, active := t.nb.Offsets()
	for i := 0; i < 8; i++ {
		if !active[i] {
			fixed[i] = false
			continue
		}
		switch neighbours[i] {
		case Unknown:
			unknownSlots = append(unknownSlots, i)
		case Alive:
			fixed[i] = true
		default:
			fixed[i] = false
		}
	}
	return fixed, unknownSlots
}

// forEachPattern calls f with every concrete aliveness pattern consistent
// with fixed/unknownSlots, by enumerating all 2^len(unknownSlots) subsets.
func forEachPattern(fixed [8]bool, unknownSlots []int, f func(pattern [8]bool)) {
	n := len(unknownSlots)
	for mask := 0; mask < (1 << uint(n)); mask++ {
		pattern := fixed
		for bit, slot := range unknownSlots {
			if mask&(1<<uint(bit)) != 0 {
				pattern[slot] = true
			}
		}
		f(pattern)
	}
}

func (t *genericTable) Forward(current State, neighbours [8]State) Entry {
	key := packDescriptor(current, neighbours)
	if e, ok := t.forwardCache[key]; ok {
		return e
	}

	fixed, unknownSlots := t.baseline(neighbours)
	var candidates []State
	if current == Unknown {
		for s := 0; s < t.states; s++ {
			candidates = append(candidates, State(s))
		}
	} else {
		candidates = []State{current}
	}

	var set StateSet
	forEachPattern(fixed, unknownSlots, func(pattern [8]bool) {
		for _, c := range candidates {
			set = set.Add(t.successorOf(c, pattern))
		}
	})

	e := Entry{PossibleSuccessor: set, ImpliedSuccessor: Unknown}
	if s, ok := set.Singleton(); ok {
		e.ImpliedSuccessor = s
	}
	t.forwardCache[key] = e
	return e
}

func (t *genericTable) Backward(successor State, neighbours [8]State) StateSet {
	key := packDescriptor(successor, neighbours) // backwardCache is its own map; no namespace bit needed
	if s, ok := t.backwardCache[key]; ok {
		return s
	}

	fixed, unknownSlots := t.baseline(neighbours)
	var set StateSet
	forEachPattern(fixed, unknownSlots, func(pattern [8]bool) {
		for c := 0; c < t.states; c++ {
			if t.successorOf(State(c), pattern) == successor {
				set = set.Add(State(c))
			}
		}
	})

	t.backwardCache[key] = set
	return set
}

func (t *genericTable) ImpliedNeighbours(current, successor State, neighbours [8]State) [8]State {
	key := packDescriptor(current, neighbours) ^ (descriptorKey(successor) << 48)
	if f, ok := t.impliedCache[key]; ok {
		return f
	}

	fixed, unknownSlots := t.baseline(neighbours)
	var forced [8]State
	for i := range forced {
		forced[i] = Unknown
	}

	seenTrue := make([]bool, len(unknownSlots))
	seenFalse := make([]bool, len(unknownSlots))
	forEachPattern(fixed, unknownSlots, func(pattern [8]bool) {
		if t.successorOf(current, pattern) != successor {
			return
		}
		for bit, slot := range unknownSlots {
			if pattern[slot] {
				seenTrue[bit] = true
			} else {
				seenFalse[bit] = true
			}
		}
	})

	for bit, slot := range unknownSlots {
		switch {
		case seenTrue[bit] && !seenFalse[bit]:
			forced[slot] = Alive
		case seenFalse[bit] && !seenTrue[bit]:
			forced[slot] = Dead
		default:
			forced[slot] = Unknown
		}
	}

	t.impliedCache[key] = forced
	return forced
}
