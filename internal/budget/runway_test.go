package budget

import (
	"encoding/json"
	"testing"
)

func TestRunway_Finite(t *testing.T) {
	r := RunwayDays(45)
	if r.Unbounded() {
		t.Error("Unbounded() = true, want false")
	}
	if r.Days() != 45 {
		t.Errorf("Days() = %f, want 45", r.Days())
	}
	if r.Months().Days() != 1.5 {
		t.Errorf("Months() = %f, want 1.5", r.Months().Days())
	}
}

func TestRunway_Unbounded(t *testing.T) {
	r := UnboundedRunway()
	if !r.Unbounded() {
		t.Error("Unbounded() = false, want true")
	}
	if r.Days() != 0 {
		t.Errorf("Days() of unbounded = %f, want 0", r.Days())
	}
	if !r.Months().Unbounded() {
		t.Error("Months() of unbounded should stay unbounded")
	}
}

func TestRunway_JSONRoundTrip(t *testing.T) {
	testCases := []struct {
		runway Runway
		want   string
	}{
		{RunwayDays(30), "30"},
		{RunwayDays(2.5), "2.5"},
		{UnboundedRunway(), `"unbounded"`},
	}

	for _, tc := range testCases {
		data, err := json.Marshal(tc.runway)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tc.runway, err)
		}
		if string(data) != tc.want {
			t.Errorf("Marshal(%v) = %s, want %s", tc.runway, data, tc.want)
		}

		var back Runway
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if back != tc.runway {
			t.Errorf("round trip: got %v, want %v", back, tc.runway)
		}
	}
}
