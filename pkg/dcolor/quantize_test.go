package dcolor

import "testing"

func uniformPalette(c RGB) *Palette {
	var p Palette
	for i := range p {
		p[i] = c
	}
	return &p
}

func TestBestColor_ExactMatch(t *testing.T) {
	p, err := NewPalette(createTestPalette())
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	for i := 1; i < Colors; i++ {
		if got := BestColor(p, p[i]); int(got) != i {
			t.Errorf("BestColor(%v) = %d, expected %d", p[i], got, i)
		}
	}
}

func TestBestColor_Nearest(t *testing.T) {
	p, err := NewPalette(createTestPalette())
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	// (250,5,5) is nearest to cube red (255,0,0) at index 5*36.
	if got := BestColor(p, RGB{250, 5, 5}); got != 180 {
		t.Errorf("expected 180, got %d", got)
	}
	// (100,100,100) is nearest to gray 100 at index 216+16.
	if got := BestColor(p, RGB{100, 100, 100}); got != 232 {
		t.Errorf("expected 232, got %d", got)
	}
}

func TestBestColor_TieGoesToLowerIndex(t *testing.T) {
	p := uniformPalette(white)
	p[5] = RGB{10, 0, 0}
	p[9] = RGB{0, 10, 0}

	if got := BestColor(p, RGB{5, 5, 0}); got != 5 {
		t.Errorf("expected lower index 5 on tie, got %d", got)
	}

	p[5], p[9] = p[9], p[5]
	if got := BestColor(p, RGB{5, 5, 0}); got != 5 {
		t.Errorf("expected lower index 5 on tie after swap, got %d", got)
	}
}

func TestBestColor_DuplicateEntries(t *testing.T) {
	p := uniformPalette(RGB{40, 40, 40})

	if got := BestColor(p, RGB{40, 40, 40}); got != 0 {
		t.Errorf("expected first duplicate 0, got %d", got)
	}
}

func TestBestColor_BlackSeed(t *testing.T) {
	// The seed distortion for black is zero, so nothing beats index 0.
	p := uniformPalette(white)
	p[7] = black

	if got := BestColor(p, black); got != 0 {
		t.Errorf("expected 0 for black target, got %d", got)
	}
}
