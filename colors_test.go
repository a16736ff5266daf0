package vterm

import "testing"

func TestResolveColorDefault(t *testing.T) {
	def := Rgb{1, 2, 3}
	got := resolveColor(DefaultColor(), def)
	if got != def {
		t.Errorf("resolveColor(Default) = %v, want %v", got, def)
	}
}

func TestResolveColorRGB(t *testing.T) {
	c := RGBColor(10, 20, 30)
	got := resolveColor(c, Rgb{0, 0, 0})
	want := Rgb{10, 20, 30}
	if got != want {
		t.Errorf("resolveColor(Rgb) = %v, want %v", got, want)
	}
}

func TestResolveColorIndexedANSI(t *testing.T) {
	got := resolveColor(IndexedColor(1), Rgb{})
	want := Rgb{204, 0, 0}
	if got != want {
		t.Errorf("resolveColor(Indexed(1)) = %v, want %v", got, want)
	}
}

func TestResolveColorIndexedCube(t *testing.T) {
	// index 16 is the cube origin (0,0,0) -> all zero.
	got := resolveColor(IndexedColor(16), Rgb{})
	want := Rgb{0, 0, 0}
	if got != want {
		t.Errorf("resolveColor(Indexed(16)) = %v, want %v", got, want)
	}

	// index 231 is the cube corner (5,5,5) -> all 255.
	got = resolveColor(IndexedColor(231), Rgb{})
	want = Rgb{255, 255, 255}
	if got != want {
		t.Errorf("resolveColor(Indexed(231)) = %v, want %v", got, want)
	}
}

func TestResolveColorIndexedGrayscale(t *testing.T) {
	got := resolveColor(IndexedColor(232), Rgb{})
	want := Rgb{8, 8, 8}
	if got != want {
		t.Errorf("resolveColor(Indexed(232)) = %v, want %v", got, want)
	}

	got = resolveColor(IndexedColor(255), Rgb{})
	want = Rgb{238, 238, 238}
	if got != want {
		t.Errorf("resolveColor(Indexed(255)) = %v, want %v", got, want)
	}
}
