package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Men's Training Tee!!", "mens-training-tee"},
		{"Classic Hoodie", "classic-hoodie"},
		{"  Spaced   Out  ", "spaced-out"},
		{"UPPER-case", "upper-case"},
		{"100% Cotton Crew", "100-cotton-crew"},
		{"___", ""},
		{"Tee", "tee"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
