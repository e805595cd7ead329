package booking

import "errors"

// ErrMinStay is returned when a committed range is shorter than the
// configured minimum stay. The end date is discarded; the start is kept.
var ErrMinStay = errors.New("stay is shorter than the minimum number of nights")

// Picker wraps a Selection with the property's minimum-stay rule.
//
// The rule deliberately lives outside the state machine: a too-short
// range keeps its start date and re-arms for a new end date, which is a
// different recovery than the machine's own booked-collision restart
// (that one discards the anchor entirely).
type Picker struct {
	sel       *Selection
	minNights int
}

// NewPicker creates a Picker enforcing minNights per committed range.
// minNights <= 0 disables the rule.
func NewPicker(minNights int, sig Signaler) *Picker {
	return &Picker{sel: NewSelection(sig), minNights: minNights}
}

// Selection exposes the wrapped machine for reads and host-controlled
// updates (SetValue bypasses the minimum-stay rule by design).
func (p *Picker) Selection() *Selection {
	return p.sel
}

// Click forwards to the selection machine, then vets any freshly
// committed range against the minimum stay. On violation the end date
// is dropped, the start is retained, and ErrMinStay is surfaced.
func (p *Picker) Click(d Date, ranges []Range, today Date) error {
	if err := p.sel.Click(d, ranges, today); err != nil {
		return err
	}
	if p.minNights <= 0 || !p.sel.Complete() {
		return nil
	}
	start, _ := p.sel.Anchor()
	end, _ := p.sel.Cursor()
	if NightsBetween(start, end) < p.minNights {
		p.sel.SetValue(&start, nil)
		return ErrMinStay
	}
	return nil
}

func (p *Picker) Clear() {
	p.sel.Clear()
}
