package util

import "testing"

func TestExtractOrderID(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Where is my order 1003?", "1003"},
		{"id 42 is too short, 98765 is fine", "98765"},
		{"no digits at all", ""},
		{"12", ""},
		{"order #0007 placed", "0007"},
	}
	for _, c := range cases {
		if got := ExtractOrderID(c.text); got != c.want {
			t.Fatalf("ExtractOrderID(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestIsDelayed(t *testing.T) {
	if !IsDelayed("Delayed") || !IsDelayed("slightly delayed in customs") {
		t.Fatalf("expected english delay markers to be detected")
	}
	if !IsDelayed("Opóźniona") {
		t.Fatalf("expected polish delay marker to be detected")
	}
	if IsDelayed("Shipped") || IsDelayed("") {
		t.Fatalf("unexpected delay detection")
	}
}
