package cli

import "testing"

func TestSlugify(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"New York", "new_york"},
		{"Mt. Rainier", "mt__rainier"},
		{"OSLO", "oslo"},
		{"São Paulo", "s_o_paulo"},
		{"  spaces  ", "spaces"},
		{"route 66", "route_66"},
	} {
		if got := slugify(test.in); got != test.want {
			t.Errorf("slugify(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
