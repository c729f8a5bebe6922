package fb

import "testing"

func TestResolution(t *testing.T) {
	d := New()

	if d.Columns() != LowWidth || d.Rows() != LowHeight {
		t.Fatalf("expected %dx%d; have %dx%d", LowWidth, LowHeight, d.Columns(), d.Rows())
	}

	d.SetResolution(true)
	if d.Columns() != HighWidth || d.Rows() != HighHeight {
		t.Fatalf("expected %dx%d; have %dx%d", HighWidth, HighHeight, d.Columns(), d.Rows())
	}

	d.Reset()
	if d.Columns() != LowWidth || d.Rows() != LowHeight {
		t.Fatalf("expected reset to select normal resolution")
	}
}

func TestPixelBounds(t *testing.T) {
	d := New()

	d.SetPixel(63, 31, true)
	if !d.Pixel(63, 31) {
		t.Fatalf("expected pixel (63, 31) to be set")
	}

	d.SetPixel(64, 0, true)
	d.SetPixel(0, 32, true)
	d.SetPixel(-1, 0, true)

	if d.Pixel(64, 0) || d.Pixel(0, 32) || d.Pixel(-1, 0) {
		t.Fatalf("expected out of range pixels to read as unset")
	}

	// Switching to high resolution exposes the storage outside the normal area.
	d.SetResolution(true)
	if d.Pixel(64, 0) {
		t.Fatalf("expected out of range write to be ignored")
	}
	if !d.Pixel(63, 31) {
		t.Fatalf("expected resolution change to keep pixel contents")
	}
}

func TestClear(t *testing.T) {
	d := New()
	d.SetResolution(true)

	for y := 0; y < d.Rows(); y++ {
		for x := 0; x < d.Columns(); x++ {
			d.SetPixel(x, y, true)
		}
	}

	d.Clear()

	for y := 0; y < d.Rows(); y++ {
		for x := 0; x < d.Columns(); x++ {
			if d.Pixel(x, y) {
				t.Fatalf("expected pixel (%d, %d) to be clear", x, y)
			}
		}
	}
}
