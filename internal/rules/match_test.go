package rules

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		desc    string
		keyword string
		want    bool
	}{
		{"PAID SHELL SERVICE STN", "shell", true},
		{"SHELLPOINT FINANCE", "shell", false}, // SHELLPOINT is one word-run
		{"shell", "shell", true},
		{"PYPL *PAYPAL UBER", "paypal pypl", true}, // both tokens, any order
		{"PAYPAL ONLY", "paypal pypl", false},
		{"AT&T MOBILE BILL", "at&t", true},
		{"ATT MOBILE BILL", "at&t", false},
		{"PYPL*UBER TRIP", "uber", true}, // '*' is a separator
		{"UBERX TRIP", "uber", false},
		{"COFFEE", "", false}, // empty keyword never matches
		{"COFFEE", "   ", false},
		{"CAFE 7.ELEVEN 123", "7.eleven", true},
	}
	for i, tc := range cases {
		if got := Matches(tc.desc, tc.keyword); got != tc.want {
			t.Fatalf("case %d: Matches(%q, %q) = %v, want %v", i, tc.desc, tc.keyword, got, tc.want)
		}
	}
}

func TestMatchesScansPastBadBoundary(t *testing.T) {
	// First occurrence is embedded in a longer word-run; a later delimited
	// occurrence must still match.
	if !Matches("SHELLPOINT AND SHELL STN", "shell") {
		t.Fatalf("expected later delimited occurrence to match")
	}
}
