package literal

import (
	"bytes"

	"github.com/coregx/weightvm/internal/conv"
	"github.com/coregx/weightvm/vm"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex programs:
//   - MaxLiterals: prevents memory bloat from wide alternations
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large ranges like 'a'-'z'
type ExtractorConfig struct {
	// MaxLiterals is the maximum number of literals to extract.
	// Extraction gives up when more would be needed.
	MaxLiterals int

	// MaxLiteralLen is the maximum length of each literal.
	// Longer paths are truncated, which is always safe for prefix tests.
	MaxLiteralLen int

	// MaxClassSize is the maximum width of a range to expand into
	// alternative bytes. Wider ranges end the literal.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
//
// Defaults are tuned for typical programs:
//   - MaxLiterals: 64 (handles most alternations without bloat)
//   - MaxLiteralLen: 64 (good cache locality for prefilters)
//   - MaxClassSize: 10 (small ranges only, avoids 'a'-'z' explosion)
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// ByteRanger is implemented by steps that accept exactly the bytes of an
// inclusive range, such as vm.Range[byte, W]. Extraction can only look
// through steps implementing it.
type ByteRanger interface {
	Bounds() (lo, hi byte)
}

// ExtractPrefixes returns literals such that every input on which prog
// completes a match starts with at least one of them. The sequence is
// minimized.
//
// It returns nil when no such set exists within the configured limits: when
// some path can complete before consuming a known byte (including paths
// whose first step is not a ByteRanger), or when MaxLiterals would be
// exceeded.
//
// Extraction walks the program depth first from pc 0. A literal ends at the
// end of the program, at an instruction already on the current path (a loop),
// at a step that is not a small ByteRanger, or at MaxLiteralLen.
func ExtractPrefixes[W any, P vm.PC](prog vm.Program[byte, W, P], config ExtractorConfig) *Seq {
	if config.MaxLiterals <= 0 || config.MaxLiteralLen <= 0 {
		return nil
	}
	w := &walker[W, P]{
		prog:   prog,
		config: config,
		onPath: make([]bool, len(prog)),
		budget: 16 * config.MaxLiterals * (config.MaxLiteralLen + len(prog) + 1),
	}
	w.walk(0, nil)
	if w.failed || len(w.out) == 0 {
		return nil
	}
	seq := NewSeq(w.out...)
	seq.Minimize()
	return seq
}

// walker holds the state of one extraction.
type walker[W any, P vm.PC] struct {
	prog   vm.Program[byte, W, P]
	config ExtractorConfig
	onPath []bool
	out    []Literal
	budget int
	failed bool
}

func (w *walker[W, P]) walk(pc int, prefix []byte) {
	if w.failed {
		return
	}
	w.budget--
	if w.budget < 0 {
		w.failed = true
		return
	}
	if pc >= len(w.prog) || w.onPath[pc] || len(prefix) >= w.config.MaxLiteralLen {
		w.emit(prefix)
		return
	}

	w.onPath[pc] = true
	defer func() { w.onPath[pc] = false }()

	inst := &w.prog[pc]
	switch inst.Op {
	case vm.OpStep:
		r, ok := inst.Step.(ByteRanger)
		if !ok {
			w.emit(prefix)
			return
		}
		lo, hi := r.Bounds()
		if lo > hi {
			// The step accepts nothing, so this path never matches.
			return
		}
		if int(hi)-int(lo)+1 > w.config.MaxClassSize {
			w.emit(prefix)
			return
		}
		for c := int(lo); c <= int(hi); c++ {
			w.walk(pc+1, append(prefix[:len(prefix):len(prefix)], byte(c)))
		}

	case vm.OpJump:
		w.walk(conv.ToInt(inst.Target), prefix)

	case vm.OpPreferTarget, vm.OpPreferNext:
		w.walk(conv.ToInt(inst.Target), prefix)
		w.walk(pc+1, prefix)

	default:
		w.failed = true
	}
}

// emit records prefix as a literal. An empty prefix means some path needs
// no particular first byte, which makes the whole set useless.
func (w *walker[W, P]) emit(prefix []byte) {
	for _, lit := range w.out {
		if bytes.Equal(lit.Bytes, prefix) && len(prefix) > 0 {
			return
		}
	}
	if len(prefix) == 0 || len(w.out) >= w.config.MaxLiterals {
		w.failed = true
		return
	}
	w.out = append(w.out, NewLiteral(bytes.Clone(prefix)))
}
