package ecs

// intersect returns the live entities present in every store, iterating the
// smallest store. A missing store yields nil.
func intersect(w *World, stores ...componentStore) []Entity {
	if len(stores) == 0 {
		return nil
	}
	smallest := stores[0]
	for _, s := range stores {
		if s == nil {
			return nil
		}
		if s.size() < smallest.size() {
			smallest = s
		}
	}

	candidates := append([]Entity(nil), smallest.entities()...)
	out := candidates[:0]
	for _, e := range candidates {
		if !w.entities.isAlive(e) {
			continue
		}
		matched := true
		for _, s := range stores {
			if s != smallest && !s.has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}
