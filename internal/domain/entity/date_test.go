package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	t.Run("serializes as a bare calendar day", func(t *testing.T) {
		d := NewDate(2024, time.March, 15)

		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `"2024-03-15"` {
			t.Errorf("expected \"2024-03-15\", got %s", string(data))
		}
	})

	t.Run("parses the calendar form", func(t *testing.T) {
		d, err := ParseDate("2024-03-15")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if d.Year() != 2024 || d.Month() != time.March {
			t.Errorf("parsed wrong date: %s", d)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "15/03/2024", "2024-13-40", "march"} {
			if _, err := ParseDate(s); err == nil {
				t.Errorf("expected %q to be rejected", s)
			}
		}
	})

	t.Run("accepts timestamps from older documents and discards the time", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"2024-03-15T18:30:00Z"`), &d); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if d.String() != "2024-03-15" {
			t.Errorf("expected 2024-03-15, got %s", d)
		}
	})

	t.Run("round-trips through JSON", func(t *testing.T) {
		d := NewDate(2024, time.December, 31)

		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		var back Date
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if back.Compare(d) != 0 {
			t.Errorf("round trip changed the date: %s != %s", back, d)
		}
	})

	t.Run("compare orders calendar days", func(t *testing.T) {
		early := NewDate(2024, time.January, 1)
		late := NewDate(2024, time.June, 1)

		if early.Compare(late) >= 0 {
			t.Error("expected january before june")
		}
		if late.Compare(early) <= 0 {
			t.Error("expected june after january")
		}
		if early.Compare(early) != 0 {
			t.Error("expected a date to equal itself")
		}
	})

	t.Run("in-month filter", func(t *testing.T) {
		d := NewDate(2024, time.March, 15)
		if !d.InMonth(2024, time.March) {
			t.Error("expected date to be in 2024-03")
		}
		if d.InMonth(2024, time.April) || d.InMonth(2023, time.March) {
			t.Error("expected date outside other months")
		}
	})
}
