// Package linematch aligns a fixed line of dialogue against a noisy,
// incrementally-growing speech-to-text transcript.
//
// Speech recognition output is error-prone — homophones, filler sounds,
// stutters, dropped articles, mis-spelled proper nouns — and interim
// hypotheses can be revised after the fact. The package tolerates that noise
// without false negatives on acceptable variation and without ever declaring
// a line correct when a genuinely wrong word was spoken.
//
// Four aligners share one word comparator:
//
//   - [Engine.CheckAccuracy] consumes the full line and the full utterance at
//     the end of a turn and returns a pass/fail verdict with diagnostics.
//   - [Engine.LockedMatch] is the monotonic incremental aligner: fed the
//     accumulated transcript on every streaming update, its locked count never
//     regresses, so live progress highlighting never flickers backward.
//   - [Engine.SubsequenceMatch] is the gap-tolerant alternative: a wrong word
//     in the middle does not block recognition of correct words after it.
//   - [Engine.WordByWord] produces one Correct/Wrong/Missing verdict per
//     expected word slot for rendering.
//
// Everything is synchronous, allocation-per-call, and free of I/O. An Engine
// is read-only after construction and safe for concurrent use; the only
// caller-held mutable state is [LockedState], which must be owned by a single
// line-practice turn at a time.
package linematch

// Default comparator thresholds. See [Engine.WordsMatch] for how they apply.
const (
	// defaultNameThreshold is the minimum Jaro-Winkler similarity for a
	// proper-noun fuzzy match.
	defaultNameThreshold = 0.80

	// lookAhead bounds how far the batch aligner searches for a displaced
	// word before classifying a token as missing, extra, or substituted.
	lookAhead = 3
)

// Option configures an [Engine].
type Option func(*Engine)

// WithTables replaces the built-in lookup tables. Useful for testing or for
// scripts in another register (period drama, fantasy) that need their own
// equivalence data.
func WithTables(t *Tables) Option {
	return func(e *Engine) {
		e.tables = t
	}
}

// WithNameThreshold sets the minimum Jaro-Winkler similarity required for a
// proper-noun fuzzy match. Default: 0.80.
func WithNameThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.nameThreshold = threshold
	}
}

// WithErrorRecovery controls whether [Engine.LockedMatch] may clear a frozen
// error when a revised transcript matches again from the locked point
// forward. Default: false — once frozen, the state is returned unchanged
// until the caller resets it for a new line, forcing an explicit restart.
func WithErrorRecovery(enabled bool) Option {
	return func(e *Engine) {
		e.errorRecovery = enabled
	}
}

// Engine is the line-accuracy engine. It is read-only after construction and
// safe for concurrent use across goroutines and practice sessions.
type Engine struct {
	tables        *Tables
	nameThreshold float64
	errorRecovery bool
}

// New returns an [Engine] with the supplied options applied over the
// defaults: built-in tables, 0.80 name threshold, freeze-on-error locked
// alignment.
func New(opts ...Option) *Engine {
	e := &Engine{
		tables:        DefaultTables(),
		nameThreshold: defaultNameThreshold,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Tables exposes the engine's lookup tables.
func (e *Engine) Tables() *Tables {
	return e.tables
}
