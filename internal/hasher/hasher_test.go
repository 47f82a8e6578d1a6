package hasher

import "testing"

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("payload"), DefaultHexLen)
	b := ContentHash([]byte("payload"), DefaultHexLen)
	c := ContentHash([]byte("payload!"), DefaultHexLen)

	if len(a) != 16 {
		t.Fatalf("length: got %d, want 16", len(a))
	}
	if a != b {
		t.Errorf("not deterministic: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different inputs share hash %s", a)
	}
	if short := ContentHash([]byte("payload"), 8); short != a[:8] {
		t.Errorf("truncation: got %s, want %s", short, a[:8])
	}
	if full := ContentHash([]byte("payload"), 0); full != a {
		t.Errorf("hexLen 0: got %s", full)
	}
}

func TestFileName(t *testing.T) {
	got := FileName("sessions/login-page", 1100, 550, "0123456789abcdef", "jpg")
	if want := "login-page.1100x550.01234567.jpg"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := FileName("a", 1, 1, "abc", "png"); got != "a.1x1.abc.png" {
		t.Errorf("short hash: got %q", got)
	}
}
