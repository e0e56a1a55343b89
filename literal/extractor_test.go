package literal

import (
	"slices"
	"testing"

	"github.com/coregx/weightvm/vm"
)

type program = vm.Program[byte, vm.Unit, uint8]

func step(lo, hi byte) vm.Inst[byte, vm.Unit, uint8] {
	return vm.StepInst[byte, vm.Unit, uint8](vm.InRange[vm.Unit](lo, hi))
}

func jump(op vm.Op, to uint8) vm.Inst[byte, vm.Unit, uint8] {
	return vm.Inst[byte, vm.Unit, uint8]{Op: op, Target: to}
}

var opaque = vm.StepFunc[byte, vm.Unit](func(c byte) (vm.Unit, bool) {
	return vm.Unit{}, c%2 == 0
})

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		name string
		prog program
		want []string // nil means no literals
	}{
		{
			name: "literal",
			prog: program{step('f', 'f'), step('o', 'o'), step('o', 'o')},
			want: []string{"foo"},
		},
		{
			name: "alternation",
			prog: program{
				jump(vm.OpPreferNext, 4),
				step('c', 'c'), step('a', 'a'), jump(vm.OpJump, 6),
				step('d', 'd'), step('o', 'o'),
				step('g', 'g'),
			},
			want: []string{"cag", "dog"},
		},
		{
			name: "small class expands",
			prog: program{step('a', 'c'), step('x', 'x')},
			want: []string{"ax", "bx", "cx"},
		},
		{
			name: "large class ends literal",
			prog: program{step('k', 'k'), step('a', 'z'), step('x', 'x')},
			want: []string{"k"},
		},
		{
			name: "loop ends literal",
			prog: program{step('A', 'A'), step('a', 'a'), jump(vm.OpPreferTarget, 0)},
			want: []string{"Aa"},
		},
		{
			name: "empty range kills path",
			prog: program{jump(vm.OpPreferNext, 3), step('b', 'a'), jump(vm.OpJump, 4), step('z', 'z')},
			want: []string{"z"},
		},
		{
			name: "opaque step after literal",
			prog: program{step('q', 'q'), {Op: vm.OpStep, Step: opaque}},
			want: []string{"q"},
		},
		{
			name: "opaque first step",
			prog: program{{Op: vm.OpStep, Step: opaque}, step('q', 'q')},
			want: nil,
		},
		{
			name: "large first class",
			prog: program{step('a', 'z')},
			want: nil,
		},
		{
			name: "empty program",
			prog: program{},
			want: nil,
		},
		{
			name: "optional first step",
			prog: program{jump(vm.OpPreferNext, 2), step('a', 'a')},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := ExtractPrefixes(tt.prog, DefaultConfig())
			if tt.want == nil {
				if seq != nil {
					t.Fatalf("ExtractPrefixes() = %q, want nil", lits(seq))
				}
				return
			}
			got := lits(seq)
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractPrefixes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPrefixes_Limits(t *testing.T) {
	prog := program{step('a', 'h'), step('a', 'h'), step('a', 'h')}

	config := DefaultConfig()
	config.MaxLiterals = 16
	if seq := ExtractPrefixes(prog, config); seq != nil {
		t.Errorf("8*8*8 literals should exceed MaxLiterals, got %d", seq.Len())
	}

	config = DefaultConfig()
	config.MaxLiteralLen = 1
	seq := ExtractPrefixes(prog, config)
	if seq.Len() != 8 || seq.MaxLen() != 1 {
		t.Errorf("MaxLiteralLen=1 should give 8 single bytes, got %q", lits(seq))
	}

	config = DefaultConfig()
	config.MaxClassSize = 4
	if seq := ExtractPrefixes(prog, config); seq != nil {
		t.Errorf("class of 8 should not expand with MaxClassSize=4, got %q", lits(seq))
	}

	if seq := ExtractPrefixes(prog, ExtractorConfig{}); seq != nil {
		t.Error("zero config should extract nothing")
	}
}

// TestExtractPrefixes_Sound checks the defining property: every input the
// program matches starts with an extracted literal.
func TestExtractPrefixes_Sound(t *testing.T) {
	prog := program{
		jump(vm.OpPreferNext, 4),
		step('a', 'b'), step('x', 'x'), jump(vm.OpJump, 6),
		step('c', 'c'), jump(vm.OpPreferTarget, 4),
		step('0', '9'),
	}
	seq := ExtractPrefixes(prog, DefaultConfig())
	if seq.IsEmpty() {
		t.Fatal("expected literals")
	}

	m := vm.NewPikeVM(prog)
	alphabet := []byte("abcx09.")
	var inputs [][]byte
	var gen func(prefix []byte)
	gen = func(prefix []byte) {
		inputs = append(inputs, slices.Clone(prefix))
		if len(prefix) == 4 {
			return
		}
		for _, c := range alphabet {
			gen(append(prefix, c))
		}
	}
	gen(nil)

	for _, in := range inputs {
		if _, ok := m.Eval(in); !ok {
			continue
		}
		covered := false
		for i := 0; i < seq.Len(); i++ {
			if lit := seq.Get(i).Bytes; len(in) >= len(lit) && string(in[:len(lit)]) == string(lit) {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("input %q matches but starts with none of %q", in, lits(seq))
		}
	}
}
