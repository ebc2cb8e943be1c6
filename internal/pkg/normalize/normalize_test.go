package normalize

import "testing"

func TestLower(t *testing.T) {
	cases := map[string]string{
		"  Ana@Example.COM ": "ana@example.com",
		"ADMIN":              "admin",
		"":                   "",
		"  ":                 "",
	}
	for in, want := range cases {
		if got := Lower(in); got != want {
			t.Fatalf("Lower(%q) = %q, want %q", in, got, want)
		}
	}
}
