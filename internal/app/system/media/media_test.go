package media

import "testing"

func TestURL(t *testing.T) {
	r := NewResolver("demo")

	t.Run("with transform", func(t *testing.T) {
		got := r.URL(KindImage, "f_auto,q_auto", "castle/hero")
		want := "https://res.cloudinary.com/demo/image/upload/f_auto,q_auto/castle/hero"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})

	t.Run("without transform", func(t *testing.T) {
		got := r.URL(KindVideo, "", "promo")
		want := "https://res.cloudinary.com/demo/video/upload/promo"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})

	t.Run("empty public id", func(t *testing.T) {
		if got := r.URL(KindImage, "", ""); got != "" {
			t.Errorf("URL = %q, want empty", got)
		}
	})

	t.Run("empty cloud name", func(t *testing.T) {
		blank := NewResolver("")
		if got := blank.URL(KindImage, "", "castle/hero"); got != "" {
			t.Errorf("URL = %q, want empty", got)
		}
	})

	t.Run("special characters escaped per segment", func(t *testing.T) {
		got := r.URL(KindImage, "", "folder/my image")
		want := "https://res.cloudinary.com/demo/image/upload/folder/my%20image"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})
}

func TestResolve(t *testing.T) {
	r := NewResolver("demo")

	t.Run("public id wins over fallback", func(t *testing.T) {
		got := r.Resolve(KindImage, "castle/hero", "https://example.com/x.png")
		want := "https://res.cloudinary.com/demo/image/upload/f_auto,q_auto/castle/hero"
		if got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})

	t.Run("fallback when no public id", func(t *testing.T) {
		got := r.Resolve(KindImage, "", "https://example.com/x.png")
		if got != "https://example.com/x.png" {
			t.Errorf("Resolve = %q", got)
		}
	})

	t.Run("empty when neither present", func(t *testing.T) {
		if got := r.Resolve(KindVideo, "", ""); got != "" {
			t.Errorf("Resolve = %q, want empty", got)
		}
	})
}

func TestHost(t *testing.T) {
	r := NewResolver("demo")
	if got := r.Host(); got != "res.cloudinary.com" {
		t.Errorf("Host = %q", got)
	}
}
