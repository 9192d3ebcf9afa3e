package parser

import "testing"

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"  Jan  ", "Jan"},
		{"Jan\n2025", "Jan 2025"},
		{"Jan\t\t2025", "Jan 2025"},
		{"Jan   2025", "Jan 2025"},
		{"\r\n", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHeader(tc.in); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeMonth(t *testing.T) {
	t.Parallel()

	yes := []string{"Jan", "January", "sep", "Sept.", "Feb 2025", "2025-05", "2025/5", "2025.12", "3月", "Month 2", "M12"}
	for _, label := range yes {
		if !LooksLikeMonth(label) {
			t.Errorf("LooksLikeMonth(%q) = false, want true", label)
		}
	}

	no := []string{"Total", "Q1", "P1", "", "Category", "Week 3"}
	for _, label := range no {
		if LooksLikeMonth(label) {
			t.Errorf("LooksLikeMonth(%q) = true, want false", label)
		}
	}
}

func TestContainsAny(t *testing.T) {
	t.Parallel()

	if !ContainsAny("Monthly SALES report", []string{"sales"}) {
		t.Error("ContainsAny should match case-insensitively")
	}
	if ContainsAny("Notes", []string{"sales", "dish"}) {
		t.Error("ContainsAny matched a keyword that is not there")
	}
}
