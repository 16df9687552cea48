package query

// Draft is a staging buffer for filter edits. Edits go to a pending copy of
// the committed spec and only reach it on Apply. In immediate mode every
// edit is applied at once.
type Draft struct {
	committed Spec
	pending   *Spec
	immediate bool
}

func NewDraft(committed Spec, immediate bool) *Draft {
	return &Draft{committed: committed.Clone(), immediate: immediate}
}

// Edit mutates the pending spec
func (d *Draft) Edit(fn func(*Spec)) {
	if d.pending == nil {
		p := d.committed.Clone()
		d.pending = &p
	}
	fn(d.pending)
	if d.immediate {
		d.Apply()
	}
}

// Pending returns the Spec as it would be after Apply
func (d *Draft) Pending() Spec {
	if d.pending == nil {
		return d.committed.Clone()
	}
	return d.pending.Clone()
}

func (d *Draft) Committed() Spec {
	return d.committed.Clone()
}

// Dirty reports whether there are unapplied edits
func (d *Draft) Dirty() bool {
	return d.pending != nil
}

// Apply commits the pending edits and returns to the first page
func (d *Draft) Apply() Spec {
	if d.pending != nil {
		d.committed = *d.pending
		d.pending = nil
		d.committed.Page = 1
	}
	return d.committed.Clone()
}

// Discard drops pending edits without touching the committed spec
func (d *Draft) Discard() {
	d.pending = nil
}

// Reset replaces the committed spec, e.g. after navigation
func (d *Draft) Reset(committed Spec) {
	d.committed = committed.Clone()
	d.pending = nil
}

// Set stages a search term or a domain filter value
func (d *Draft) Set(key, value string) {
	d.Edit(func(s *Spec) {
		if key == "search" {
			s.Search = value
			return
		}
		if value == "" || value == All {
			delete(s.Filters, key)
			return
		}
		s.Filters[key] = value
	})
}

// Toggle stages a show/hide toggle value
func (d *Draft) Toggle(key string, on bool) {
	d.Edit(func(s *Spec) {
		s.Toggles[key] = on
	})
}
