package diag

import "fortio.org/safecast"

// Bag accumulates diagnostics in rule-firing order up to a fixed cap.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max diagnostics. Non-positive or
// absurdly large caps clamp to the uint16 range.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		capped = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, capped),
		max:   capped,
	}
}

// Add appends a diagnostic, honoring the cap.
// Returns false when the diagnostic was dropped because the cap is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the cap has been reached.
func (b *Bag) Full() bool {
	return len(b.items) >= int(b.max)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the accumulated diagnostics.
// Do not modify the returned slice; it aliases the bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether any accumulated diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}
