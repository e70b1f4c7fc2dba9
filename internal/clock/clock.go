package clock

import "time"

// Clock abstracts the ambient current-time read so the invoice issuance
// date can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }
