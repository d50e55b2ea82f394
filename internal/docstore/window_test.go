package docstore

import "testing"

func TestResolveWindowDefaults(t *testing.T) {
	cases := []struct {
		name       string
		page, size string
		wantOffset int64
		wantLimit  int64
	}{
		{"both missing", "", "", 0, 10},
		{"non-numeric", "abc", "xyz", 0, 10},
		{"explicit values", "2", "5", 10, 5},
		{"negative page", "-3", "5", 0, 5},
		{"zero size falls back", "1", "0", 10, 10},
		{"negative size falls back", "1", "-7", 10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ResolveWindow(tc.page, tc.size, 0)
			if w.Offset != tc.wantOffset || w.Limit != tc.wantLimit {
				t.Fatalf("ResolveWindow(%q, %q) = {%d %d}, want {%d %d}",
					tc.page, tc.size, w.Offset, w.Limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestResolveWindowCapsSize(t *testing.T) {
	w := ResolveWindow("0", "5000", 100)
	if w.Limit != 100 {
		t.Fatalf("expected size capped at 100, got %d", w.Limit)
	}

	// Offset is computed from the clamped size.
	w = ResolveWindow("2", "5000", 100)
	if w.Offset != 200 {
		t.Fatalf("expected offset 200 after clamping, got %d", w.Offset)
	}
}
