package core

import (
	"testing"
	"time"
)

func TestParseDateNormalizesRepresentations(t *testing.T) {
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	cases := []string{
		"2024-01-05",
		"2024-01-05T00:00:00Z",
		"1704412800", // unix seconds
	}
	for _, in := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-45"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestSameMonth(t *testing.T) {
	d := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	if !SameMonth(d, time.February, 2024) {
		t.Fatal("expected same month")
	}
	if SameMonth(d, time.February, 2023) {
		t.Fatal("different year should not match")
	}
	if SameMonth(d, time.March, 2024) {
		t.Fatal("different month should not match")
	}
}
