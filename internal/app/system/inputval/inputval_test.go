package inputval

import (
	"strings"
	"testing"
)

type sampleInput struct {
	Slug   string `json:"slug" validate:"required,slug" label:"Slug"`
	Path   string `json:"path" validate:"required,pagepath" label:"Path"`
	Status string `json:"status" validate:"required,status" label:"Status"`
}

func validSample() sampleInput {
	return sampleInput{
		Slug:   "steel-beams",
		Path:   "/about/team",
		Status: "published",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid input has no errors", func(t *testing.T) {
		res := Validate(validSample())
		if res.HasErrors() {
			t.Errorf("valid input produced errors: %+v", res.Errors)
		}
		if res.First() != "" {
			t.Errorf("First() = %q on clean result", res.First())
		}
		if res.Fields() != nil {
			t.Errorf("Fields() = %v on clean result", res.Fields())
		}
	})

	t.Run("bad slug", func(t *testing.T) {
		in := validSample()
		in.Slug = "Steel Beams"
		res := Validate(in)
		if !res.HasErrors() {
			t.Fatal("uppercase slug accepted")
		}
		if !strings.Contains(res.First(), "Slug") {
			t.Errorf("message missing label: %q", res.First())
		}
	})

	t.Run("bad page path", func(t *testing.T) {
		in := validSample()
		in.Path = "about/team"
		if res := Validate(in); !res.HasErrors() {
			t.Error("unrooted path accepted")
		}
	})

	t.Run("bad status", func(t *testing.T) {
		in := validSample()
		in.Status = "archived"
		if res := Validate(in); !res.HasErrors() {
			t.Error("unknown status accepted")
		}
	})

	t.Run("errors keyed by json name", func(t *testing.T) {
		in := validSample()
		in.Status = "archived"
		res := Validate(in)
		if !res.HasErrors() {
			t.Fatal("unknown status accepted")
		}
		if _, ok := res.Fields()["status"]; !ok {
			t.Errorf("Fields() keys = %v, want json name \"status\"", res.Fields())
		}
	})

	t.Run("required", func(t *testing.T) {
		res := Validate(sampleInput{})
		if !res.HasErrors() {
			t.Fatal("empty input accepted")
		}
		if len(res.Fields()) == 0 {
			t.Error("Fields() empty for failing input")
		}
	})
}

func TestIsValidHTTPURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/a?b=c", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"//example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidHTTPURL(tc.in); got != tc.want {
			t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
