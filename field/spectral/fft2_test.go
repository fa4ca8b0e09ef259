package spectral

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestTransform2DRoundTrip(t *testing.T) {
	n := 16
	tr, err := NewTransform2D(n)
	if err != nil {
		t.Fatalf("NewTransform2D error: %v", err)
	}

	src := make([]complex128, n*n)
	for i := range src {
		src[i] = complex(math.Sin(float64(i)*0.37), math.Cos(float64(i)*0.11))
	}

	spec := make([]complex128, n*n)
	if err := tr.Forward(spec, src); err != nil {
		t.Fatal(err)
	}

	back := make([]complex128, n*n)
	if err := tr.Inverse(back, spec); err != nil {
		t.Fatal(err)
	}

	for i := range src {
		if cmplx.Abs(back[i]-src[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, back[i], src[i])
		}
	}
}

func TestTransform2DImpulse(t *testing.T) {
	n := 8
	tr, err := NewTransform2D(n)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]complex128, n*n)
	buf[0] = 1

	if err := tr.Forward(buf, buf); err != nil {
		t.Fatal(err)
	}

	for i, c := range buf {
		if cmplx.Abs(c-1) > 1e-12 {
			t.Fatalf("bin %d = %v, want 1", i, c)
		}
	}
}

func TestTransform2DSeparableTone(t *testing.T) {
	// A single 2-D complex exponential lands in exactly one bin.
	n := 16
	tr, err := NewTransform2D(n)
	if err != nil {
		t.Fatal(err)
	}

	kr, kc := 3, 5
	buf := make([]complex128, n*n)
	for r := range n {
		for c := range n {
			phase := 2 * math.Pi * (float64(kr*r) + float64(kc*c)) / float64(n)
			buf[r*n+c] = cmplx.Exp(complex(0, phase))
		}
	}

	if err := tr.Forward(buf, buf); err != nil {
		t.Fatal(err)
	}

	for i, c := range buf {
		want := 0.0
		if i == kr*n+kc {
			want = float64(n * n)
		}
		if math.Abs(cmplx.Abs(c)-want) > 1e-9 {
			t.Fatalf("bin %d magnitude = %v, want %v", i, cmplx.Abs(c), want)
		}
	}
}

func TestTransform2DBufferSize(t *testing.T) {
	tr, err := NewTransform2D(4)
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.Forward(make([]complex128, 16), make([]complex128, 15)); err == nil {
		t.Fatal("expected error for mismatched buffer")
	}

	if tr.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", tr.Size())
	}
}
