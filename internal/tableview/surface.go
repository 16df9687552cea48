package tableview

import "sync"

// Surface owns the global side effects of a drag: suspended text
// selection and the resize cursor. BeginDrag applies them and returns the
// function that undoes them.
type Surface interface {
	BeginDrag() (release func())
}

// NopSurface has no side effects
type NopSurface struct{}

func (NopSurface) BeginDrag() func() { return func() {} }

// releaseOnce guards a release func against double calls
func releaseOnce(release func()) func() {
	if release == nil {
		return func() {}
	}
	var once sync.Once
	return func() { once.Do(release) }
}
