package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-Slugged", "already-slugged"},
		{"UPPER CASE", "upper-case"},
		{"multiple---symbols!!!here", "multiple-symbols-here"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugTokenLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		token := slugToken()
		if len(token) != 5 {
			t.Fatalf("expected 5-char token, got %q", token)
		}
		seen[token] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected tokens to vary across calls")
	}
}
