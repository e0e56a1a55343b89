package keyset

import (
	"slices"
	"testing"

	"github.com/coregx/weightvm/vm"
)

func TestSet_Basics(t *testing.T) {
	var zero Set
	if !zero.IsEmpty() || zero.Len() != 0 {
		t.Error("zero Set should be empty")
	}
	if got := zero.Success(); got != All() || got.Len() != Size {
		t.Errorf("Success() = %v, want all %d keys", got, Size)
	}

	s := Key(3).Merge(Key(64)).Merge(Key(127))
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	for _, k := range []int{3, 64, 127} {
		if !s.Has(k) {
			t.Errorf("Has(%d) = false", k)
		}
	}
	for _, k := range []int{-1, 0, 63, 65, 128} {
		if s.Has(k) {
			t.Errorf("Has(%d) = true", k)
		}
	}
	if got := s.Keys(); !slices.Equal(got, []int{3, 64, 127}) {
		t.Errorf("Keys() = %v", got)
	}
	if got := s.String(); got != "{3 64 127}" {
		t.Errorf("String() = %q", got)
	}
}

func TestSet_Concat(t *testing.T) {
	a := Key(1).Merge(Key(2)).Merge(Key(100))
	b := Key(2).Merge(Key(100)).Merge(Key(101))

	got, ok := a.Concat(b)
	if !ok || !slices.Equal(got.Keys(), []int{2, 100}) {
		t.Errorf("Concat() = (%v, %v), want {2 100}", got, ok)
	}
	if _, ok := Key(1).Concat(Key(2)); ok {
		t.Error("disjoint sets should not concatenate")
	}
}

func TestKey_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Key(128) should panic")
		}
	}()
	Key(Size)
}

func TestRotateLeft(t *testing.T) {
	tests := []struct {
		key, by, want int
	}{
		{0, 1, 1},
		{63, 1, 64},
		{127, 1, 0},
		{5, 64, 69},
		{100, 100, 72},
		{10, -11, 127},
	}
	for _, tt := range tests {
		got := Key(tt.key).rotateLeft(tt.by)
		if !slices.Equal(got.Keys(), []int{tt.want}) {
			t.Errorf("Key(%d).rotateLeft(%d) = %v, want {%d}", tt.key, tt.by, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	for _, n := range []int{0, 1, 26, 63, 64, 65, 127, 128} {
		if got := span(n).Len(); got != n {
			t.Errorf("span(%d).Len() = %d", n, got)
		}
	}
}

func TestShift_Step(t *testing.T) {
	// Ciphertext 'c' from plaintext in [a, b] means key 2 or 1.
	keys, ok := Shift{Lo: 'a', Hi: 'b'}.Step('c')
	if !ok || !slices.Equal(keys.Keys(), []int{1, 2}) {
		t.Errorf("Step('c') = %v, want {1 2}", keys)
	}

	// Wrap-around: ciphertext 1 from plaintext 127 means key 2.
	keys, _ = Shift{Lo: 127, Hi: 127}.Step(1)
	if !slices.Equal(keys.Keys(), []int{2}) {
		t.Errorf("Step(1) = %v, want {2}", keys)
	}

	// Every key is consistent with the true one.
	for k := 0; k < Size; k++ {
		c := Encrypt([]byte{'q'}, k)[0]
		keys, _ := Shift{Lo: 'a', Hi: 'z'}.Step(c)
		if !keys.Has(k) || keys.Len() != 26 {
			t.Errorf("key %d: Step(%d) = %v", k, c, keys)
		}
	}
}

func TestEncrypt(t *testing.T) {
	got := Encrypt([]byte{'a', 127}, 2)
	if got[0] != 'c' || got[1] != 1 {
		t.Errorf("Encrypt() = %v", got)
	}
	if got := Encrypt([]byte{'a'}, -1); got[0] != '`' {
		t.Errorf("Encrypt(-1) = %q", got)
	}
}

// caesarProgram matches one or more words of lowercase letters joined by an
// underscore, with every step recovering candidate keys.
func caesarProgram() vm.Program[byte, Set, uint8] {
	b := vm.NewBuilder[byte, Set, uint8]()
	first := b.Step(Shift{Lo: 'a', Hi: 'z'})
	b.PreferTarget(first)
	b.Step(Shift{Lo: '_', Hi: '_'})
	second := b.Step(Shift{Lo: 'a', Hi: 'z'})
	b.PreferTarget(second)
	return b.MustBuild()
}

func TestCaesar_RecoversEveryKey(t *testing.T) {
	m := vm.NewPikeVM(caesarProgram())
	message := []byte("hello_world")

	for key := 0; key < Size; key++ {
		ciphertext := Encrypt(message, key)
		got, ok := m.Eval(ciphertext)
		if !ok {
			t.Fatalf("key %d: no match", key)
		}
		if got != Key(key) {
			t.Errorf("key %d: recovered %v", key, got)
		}
	}
}

func TestCaesar_NoMatch(t *testing.T) {
	m := vm.NewPikeVM(caesarProgram())

	// Adjacent plaintext symbols differ by at most 27, so ciphertext symbols
	// 64 apart are inconsistent with every key.
	if got, ok := m.Eval([]byte{0, 64, 5}); ok {
		t.Errorf("inconsistent ciphertext matched with keys %v", got)
	}
	if _, ok := m.Eval([]byte{0}); ok {
		t.Error("a single symbol should not complete")
	}
	if _, ok := m.Eval(nil); ok {
		t.Error("empty ciphertext should not match")
	}
}
