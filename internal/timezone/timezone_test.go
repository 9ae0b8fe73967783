package timezone

import "testing"

func TestParseDate(t *testing.T) {
	s := "2025-03-14"
	d, err := ParseDate(&s, "Europe/Lisbon")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Format(DateLayout) != s || d.Location().String() != "Europe/Lisbon" {
		t.Fatalf("got %v", d)
	}

	blank := "  "
	if d, err := ParseDate(&blank, ""); d != nil || err != nil {
		t.Fatalf("blank: %v %v", d, err)
	}
	if d, err := ParseDate(nil, ""); d != nil || err != nil {
		t.Fatalf("nil: %v %v", d, err)
	}

	bad := "14/03/2025"
	if _, err := ParseDate(&bad, ""); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestLocationFallsBack(t *testing.T) {
	if Location("Mars/Olympus").String() != DefaultTimezone {
		t.Fatal("invalid zone should fall back to default")
	}
}
