package storage

import "testing"

func TestIsPostgresDSN(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"postgres://db.example.com:5432/cockpit", true},
		{"postgresql://db.example.com/cockpit", true},
		{"host=localhost dbname=cockpit", true},
		{"/home/u/.config/cockpit/cockpit.db", false},
		{"cockpit.json", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsPostgresDSN(c.in); got != c.want {
			t.Errorf("IsPostgresDSN(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsJSONPath(t *testing.T) {
	if !IsJSONPath("data/cockpit.json") {
		t.Error("expected .json path to be detected")
	}
	if IsJSONPath("data/cockpit.db") {
		t.Error(".db path must not be detected as JSON")
	}
}
