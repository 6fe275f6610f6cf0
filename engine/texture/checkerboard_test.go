package texture

import (
	"bytes"
	"errors"
	"testing"
)

func mustCheckerboard(t *testing.T, size int) *Image {
	t.Helper()
	img, err := Checkerboard(size)
	if err != nil {
		t.Fatalf("Checkerboard(%d) error: %v", size, err)
	}
	return img
}

func TestCheckerboardCorners(t *testing.T) {
	img := mustCheckerboard(t, DefaultCheckerSize)
	if got := img.At(0, 0); got != black {
		t.Errorf("cell(0,0) = %v, want %v", got, black)
	}
	if got := img.At(0, 1); got != white {
		t.Errorf("cell(0,1) = %v, want %v", got, white)
	}
	if got := img.At(1, 0); got != white {
		t.Errorf("cell(1,0) = %v, want %v", got, white)
	}
	if got := img.At(7, 7); got != black {
		t.Errorf("cell(7,7) = %v, want %v", got, black)
	}
}

func TestCheckerboardParity(t *testing.T) {
	img := mustCheckerboard(t, DefaultCheckerSize)
	for i := range img.Size() {
		for j := range img.Size() {
			want := white
			if (i+j)%2 == 0 {
				want = black
			}
			if got := img.At(i, j); got != want {
				t.Fatalf("cell(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestCheckerboardSymmetric(t *testing.T) {
	img := mustCheckerboard(t, DefaultCheckerSize)
	for i := range img.Size() {
		for j := range img.Size() {
			if img.At(i, j) != img.At(j, i) {
				t.Fatalf("cell(%d,%d) != cell(%d,%d)", i, j, j, i)
			}
		}
	}
}

func TestCheckerboardDeterministic(t *testing.T) {
	a := mustCheckerboard(t, DefaultCheckerSize)
	b := mustCheckerboard(t, DefaultCheckerSize)
	if !bytes.Equal(a.Pixels(), b.Pixels()) {
		t.Error("two syntheses with the same size differ")
	}
}

func TestCheckerboardSizes(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{size: 1},
		{size: 8},
		{size: 13},
		{size: 0, wantErr: true},
		{size: -4, wantErr: true},
	}
	for _, tt := range tests {
		img, err := Checkerboard(tt.size)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("Checkerboard(%d) err = %v, want ErrInvalidSize", tt.size, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Checkerboard(%d) unexpected error: %v", tt.size, err)
			continue
		}
		if got := len(img.Pixels()); got != tt.size*tt.size*4 {
			t.Errorf("Checkerboard(%d) has %d bytes, want %d", tt.size, got, tt.size*tt.size*4)
		}
	}
}

func TestStagingDataIsACopy(t *testing.T) {
	img := mustCheckerboard(t, 2)
	staged := img.StagingData()
	if staged.Width != 2 || staged.Height != 2 {
		t.Fatalf("staging dims = %dx%d, want 2x2", staged.Width, staged.Height)
	}
	staged.Pixels[0] = 42
	if img.At(0, 0) != black {
		t.Error("mutating staging pixels changed the source image")
	}
}
