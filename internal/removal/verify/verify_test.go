package verify

import "testing"

func TestSplitName(t *testing.T) {
	cases := []struct {
		name           string
		wantF, wantL string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane Middle Doe", "Jane", "Doe"},
		{"Cher", "Cher", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		first, last := splitName(c.name)
		if first != c.wantF || last != c.wantL {
			t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)", c.name, first, last, c.wantF, c.wantL)
		}
	}
}

func TestRecheckDays(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 7},
		{-1, 7},
		{14, 14},
	}
	for _, c := range cases {
		if got := recheckDays(c.in); got != c.want {
			t.Errorf("recheckDays(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
