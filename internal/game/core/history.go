package core

// TurnRecord is one immutable entry of the turn history. To == Sea
// marks a reinforcement placement on From rather than an attack. The
// roll sums are not needed to replay state (Success decides the
// transition) but are kept so a display layer can show the rolls
// without re-simulating.
type TurnRecord struct {
	From         int
	To           int
	Success      bool
	AttackerRoll int
	DefenderRoll int
}

// IsReinforcement reports whether the record is a reinforcement event.
func (r TurnRecord) IsReinforcement() bool { return r.To == Sea }

// History is the append-only replay log of a game.
type History struct {
	records []TurnRecord
}

// Append adds a record to the log.
func (h *History) Append(r TurnRecord) {
	h.records = append(h.records, r)
}

// Records returns the log in append order. Callers must not modify the
// returned slice.
func (h *History) Records() []TurnRecord { return h.records }

// Len returns the number of records.
func (h *History) Len() int { return len(h.records) }

// Reset clears the log for a new game.
func (h *History) Reset() { h.records = h.records[:0] }

// Snapshot captures per-territory ownership and dice at game start,
// indexed by territory id. Together with the History it reconstructs
// the whole game.
type Snapshot struct {
	Owner []int
	Dice  []int
}

// TakeSnapshot copies the current ownership and dice counts off a map.
func TakeSnapshot(m *Map) *Snapshot {
	s := &Snapshot{
		Owner: make([]int, len(m.Territories)),
		Dice:  make([]int, len(m.Territories)),
	}
	for i := range m.Territories {
		t := &m.Territories[i]
		s.Owner[i] = t.Owner
		s.Dice[i] = t.Dice
	}
	return s
}

// Restore writes the snapshot's ownership and dice back onto the map.
func (s *Snapshot) Restore(m *Map) {
	for i := range m.Territories {
		if i >= len(s.Owner) {
			break
		}
		if !m.Territories[i].Exists() {
			continue
		}
		m.Territories[i].Owner = s.Owner[i]
		m.Territories[i].Dice = s.Dice[i]
	}
}
