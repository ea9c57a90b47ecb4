package slugs

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		slug string
		want bool
	}{
		{"hello", true},
		{"hello-world", true},
		{"post-2024", true},
		{"", false},
		{"Hello", false},
		{"hello world", false},
		{"hello_world", false},
		{"/about", false},
		{"مرحبا", false},
	}
	for _, tc := range cases {
		if got := IsValid(tc.slug); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.slug, got, tc.want)
		}
	}
}

func TestIsValidPagePath(t *testing.T) {
	cases := []struct {
		slug string
		want bool
	}{
		{"/", true},
		{"/about", true},
		{"/services/transport", true},
		{"/a/b/c", true},
		{"", false},
		{"about", false},
		{"/About", false},
		{"/about/", false},
		{"//about", false},
		{"/has space", false},
	}
	for _, tc := range cases {
		if got := IsValidPagePath(tc.slug); got != tc.want {
			t.Errorf("IsValidPagePath(%q) = %v, want %v", tc.slug, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Hello-World  ", "hello-world"},
		{"/About", "/about"},
		{"already-lower", "already-lower"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
