package conv

import (
	"math"
	"testing"
)

func TestToUnsigned(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want bool
	}{
		{"zero", 0, true},
		{"max uint8", 255, true},
		{"overflow uint8", 256, false},
		{"negative", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToUnsigned[uint8](tt.n)
			if ok != tt.want {
				t.Fatalf("ToUnsigned[uint8](%d) ok = %v, want %v", tt.n, ok, tt.want)
			}
			if ok && int(got) != tt.n {
				t.Errorf("ToUnsigned[uint8](%d) = %d", tt.n, got)
			}
		})
	}

	if _, ok := ToUnsigned[uint16](math.MaxUint16 + 1); ok {
		t.Error("uint16 should reject 65536")
	}
	if v, ok := ToUnsigned[uint32](70000); !ok || v != 70000 {
		t.Errorf("ToUnsigned[uint32](70000) = %d, %v", v, ok)
	}
}

func TestToUnsigned_NamedType(t *testing.T) {
	type pc uint8
	v, ok := ToUnsigned[pc](200)
	if !ok || v != 200 {
		t.Errorf("ToUnsigned[pc](200) = %d, %v", v, ok)
	}
}

func TestToInt(t *testing.T) {
	if got := ToInt(uint8(7)); got != 7 {
		t.Errorf("ToInt(7) = %d", got)
	}
	if got := ToInt(uint64(math.MaxUint64)); got != math.MaxInt {
		t.Errorf("ToInt(MaxUint64) = %d, want saturation at MaxInt", got)
	}
}

func TestBits(t *testing.T) {
	if got := Bits[uint8](); got != 8 {
		t.Errorf("Bits[uint8]() = %d", got)
	}
	if got := Bits[uint16](); got != 16 {
		t.Errorf("Bits[uint16]() = %d", got)
	}
	if got := Bits[uint64](); got != 64 {
		t.Errorf("Bits[uint64]() = %d", got)
	}
}

func TestIntToUint32_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative input")
		}
	}()
	IntToUint32(-1)
}
