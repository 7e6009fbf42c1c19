package types

import "testing"

func TestCheckRangeSignedOverflow(t *testing.T) {
	// Assigning INT_MAX + 1 to a signed 32-bit integer must fail (§8 boundary).
	_, max := Width32.Bounds(true)
	_, err := CheckRange(Int, max+1)
	if err == nil {
		t.Fatalf("expected OutOfRangeError, got nil")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Fatalf("expected *OutOfRangeError, got %T", err)
	}
}

func TestCheckRangeSignedInBounds(t *testing.T) {
	min, max := Width32.Bounds(true)
	for _, v := range []int64{min, 0, max} {
		got, err := CheckRange(Int, v)
		if err != nil {
			t.Fatalf("CheckRange(%d): unexpected error %v", v, err)
		}
		if got != v {
			t.Fatalf("CheckRange(%d) = %d, want %d", v, got, v)
		}
	}
}

func TestCheckRangeUnsignedNegativeClampsToZero(t *testing.T) {
	// Assigning -5 to an unsigned 8-bit integer stores 0 (§8 boundary).
	got, err := CheckRange(UTiny, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestCheckRangeUnsignedMasksWidth(t *testing.T) {
	got, err := CheckRange(UTiny, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 300&0xFF {
		t.Fatalf("got %d, want %d", got, 300&0xFF)
	}
}

func TestCheckRangeUnsignedInvariant(t *testing.T) {
	// For all v assigned to unsigned T: stored == max(0, v) & mask(T).
	cases := []struct {
		width IntWidth
		v     int64
	}{
		{Width8, -1}, {Width8, 5}, {Width8, 1000},
		{Width16, -100}, {Width16, 70000},
		{Width32, -1}, {Width32, 1},
	}
	for _, c := range cases {
		ut := &Integer{Width: c.width, Signed: false}
		got, err := CheckRange(ut, c.v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := c.v
		if want < 0 {
			want = 0
		}
		want = int64(uint64(want) & c.width.Mask())
		if got != want {
			t.Fatalf("width=%d v=%d: got %d, want %d", c.width, c.v, got, want)
		}
	}
}
