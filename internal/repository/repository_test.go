package repository

import "testing"

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SQL", "%SQL%"},
		{"", "%%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`C:\dir`, `%C:\\dir%`},
	}

	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Fatalf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
