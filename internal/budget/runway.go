package budget

import "encoding/json"

// Runway is how long a pool of money is projected to last, in days.
// It is either a finite number of days or explicitly unbounded (a pool
// with zero expenses never runs out). Unbounded is a tagged state, not
// an IEEE infinity, so it can never leak into arithmetic or JSON as a
// non-encodable value.
type Runway struct {
	days      float64
	unbounded bool
}

// RunwayDays returns a finite runway of d days.
func RunwayDays(d float64) Runway {
	return Runway{days: d}
}

// UnboundedRunway returns the never-runs-out sentinel.
func UnboundedRunway() Runway {
	return Runway{unbounded: true}
}

// Unbounded reports whether the runway never ends.
func (r Runway) Unbounded() bool { return r.unbounded }

// Days returns the finite day count; 0 when unbounded. Check
// Unbounded first.
func (r Runway) Days() float64 {
	if r.unbounded {
		return 0
	}
	return r.days
}

// Months converts the runway to 30-day months.
func (r Runway) Months() Runway {
	if r.unbounded {
		return r
	}
	return Runway{days: r.days / DaysPerMonth}
}

// MarshalJSON encodes a finite runway as a number and an unbounded one
// as the string "unbounded".
func (r Runway) MarshalJSON() ([]byte, error) {
	if r.unbounded {
		return []byte(`"unbounded"`), nil
	}
	return json.Marshal(r.days)
}

// UnmarshalJSON accepts a number or the string "unbounded".
func (r *Runway) UnmarshalJSON(data []byte) error {
	if string(data) == `"unbounded"` {
		*r = UnboundedRunway()
		return nil
	}
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*r = RunwayDays(d)
	return nil
}
