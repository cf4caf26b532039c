package state

import "log"

type opKey struct {
	site    string
	lamport uint64
}

// Apply merges an op received from another site. It returns true if the
// board changed. Echoes of our own ops and ops already seen are ignored.
// Inserted strokes arrive smoothed and are stored as-is.
func (s *Session) Apply(op Op) bool {
	if op.Site == s.site {
		return false
	}
	key := opKey{site: op.Site, lamport: op.Lamport}
	if _, dup := s.seen[key]; dup {
		log.Printf("[SYNC] Op %s@%d already applied, ignoring", op.Site, op.Lamport)
		return false
	}
	s.seen[key] = struct{}{}
	s.clock.Update(op.Lamport)

	switch op.Type {
	case OpInsertStroke:
		return s.applyInsert(op)
	case OpDeleteStroke:
		return s.applyDelete(op)
	case OpClear:
		n := s.clearBefore(stampOf(op))
		log.Printf("[SYNC] Board cleared by site %s, %d strokes dropped", op.Site, n)
		return true
	}
	log.Printf("[SYNC] Unknown op type %q from site %s", op.Type, op.Site)
	return false
}

func (s *Session) applyInsert(op Op) bool {
	origin := Origin{Site: op.Site, ID: op.Stroke}
	if len(op.Points) == 0 {
		return false
	}
	if _, exists := s.byOrigin[origin]; exists {
		return false
	}
	stamp := stampOf(op)
	if stamp.Less(s.cleared) {
		log.Printf("[SYNC] Remote stroke %s/%d predates the last clear, dropping", origin.Site, origin.ID)
		return false
	}
	st := &Stroke{id: s.ids.Next(), origin: origin, stamp: stamp}
	for _, p := range op.Points {
		st.Append(p.X, p.Y)
	}
	s.store(st)
	log.Printf("[SYNC] Remote stroke %s/%d added as %d", origin.Site, origin.ID, st.id)
	return true
}

func stampOf(op Op) Stamp { return Stamp{Lamport: op.Lamport, Site: op.Site} }

func (s *Session) applyDelete(op Op) bool {
	origin := Origin{Site: op.Target, ID: op.Stroke}
	id, ok := s.byOrigin[origin]
	if !ok {
		return false
	}
	t := s.where[id]
	st := t.strokes[id]
	t.RemoveStroke(id)
	s.forget(st)
	log.Printf("[SYNC] Stroke %s/%d removed by site %s", origin.Site, origin.ID, op.Site)
	return true
}
