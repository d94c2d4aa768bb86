package track

// Registry is the set of live locomotive handles shared between the
// command API and the buffer rebuild step. It belongs to the driver
// and is guarded by the driver's mutex; there is no hidden global
// list of locomotives.
type Registry struct {
	locos []*Locomotive
}

func (r *Registry) add(l *Locomotive) {
	r.locos = append(r.locos, l)
}

func (r *Registry) Len() int {
	return len(r.locos)
}

// dirty reports whether any command changed since the last rebuild.
func (r *Registry) dirty() bool {
	for _, l := range r.locos {
		if l.dirty {
			return true
		}
	}
	return false
}

func (r *Registry) clearDirty() {
	for _, l := range r.locos {
		l.dirty = false
	}
}
