package inject

import "testing"

func TestMouseButtonNameRejectsUnsupported(t *testing.T) {
	if _, err := mouseButtonName("x1"); err == nil {
		t.Fatalf("expected error for unsupported button x1")
	}
}

func TestMouseButtonNameAcceptsKnownButtons(t *testing.T) {
	for _, b := range []string{"left", "right", "center"} {
		name, err := mouseButtonName(b)
		if err != nil {
			t.Fatalf("mouseButtonName(%q): %v", b, err)
		}
		if name != b {
			t.Fatalf("mouseButtonName(%q) = %q, want %q", b, name, b)
		}
	}
}
