// Package session manages live line-rehearsal sessions. A session holds the
// actor's active line and feeds successive transcript revisions through the
// matching engine, tracking realtime progress and producing a final verdict
// when the recognizer commits an utterance.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/offstage/linecoach/internal/observe"
	"github.com/offstage/linecoach/pkg/linematch"
)

// Errors returned by session operations.
var (
	// ErrNoActiveLine is returned when a transcript arrives before a line
	// has been started.
	ErrNoActiveLine = errors.New("session: no active line")

	// ErrNotFound is returned by [Manager] lookups for unknown session IDs.
	ErrNotFound = errors.New("session: not found")
)

// Progress reports how far through the active line the actor has spoken.
type Progress struct {
	// Matched is the number of expected words confirmed so far.
	Matched int `json:"matched"`

	// Total is the number of words in the active line.
	Total int `json:"total"`

	// Frozen reports that the locked matcher heard a wrong word and has
	// stopped advancing until the line is restarted or the recognizer
	// revises the transcript (with error recovery on).
	Frozen bool `json:"frozen"`

	// Coverage is the fraction of the line found by the subsequence
	// matcher. Only set when the session uses the subsequence strategy.
	Coverage float64 `json:"coverage,omitempty"`
}

// WordFeedback is one expected-word slot of a final verdict.
type WordFeedback struct {
	// Expected is the word the script calls for.
	Expected string `json:"expected"`

	// Spoken is the word actually heard for this slot. Empty for missing
	// words and for slots that were legitimately skipped.
	Spoken string `json:"spoken,omitempty"`

	// Verdict is "correct", "wrong", or "missing".
	Verdict string `json:"verdict"`
}

// Verdict is the outcome of a finished line attempt.
type Verdict struct {
	// Pass reports whether the delivery was accurate enough to advance.
	Pass bool `json:"pass"`

	// Accuracy is the percentage of expected words delivered, 0-100.
	Accuracy int `json:"accuracy"`

	// Missing lists expected words that were never spoken.
	Missing []string `json:"missing,omitempty"`

	// Extra lists spoken words the line does not contain.
	Extra []string `json:"extra,omitempty"`

	// Wrong lists substitutions, formatted as `"spoken" instead of "expected"`.
	Wrong []string `json:"wrong,omitempty"`

	// Words gives per-word feedback aligned with the line's words.
	Words []WordFeedback `json:"words,omitempty"`
}

// Session is a single actor's rehearsal of one line at a time.
// All exported methods are safe for concurrent use.
type Session struct {
	id string

	mu        sync.Mutex
	line      string
	lineTotal int
	locked    *linematch.LockedState
	attempts  int
	startedAt time.Time

	// Shared, read-only after construction.
	eng         *linematch.Engine
	names       *linematch.NameSet
	strict      bool
	subsequence bool
	metrics     *observe.Metrics
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// StartLine sets the line the actor is about to deliver and resets any
// progress from the previous line.
func (s *Session) StartLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.line = line
	s.lineTotal = len(linematch.Tokenize(line))
	s.locked = linematch.NewLockedState()
	s.attempts = 0
	s.startedAt = time.Now()
}

// Progress returns the current realtime progress without feeding a new
// transcript revision.
func (s *Session) Progress() (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.line == "" {
		return Progress{}, ErrNoActiveLine
	}
	p := Progress{Total: s.lineTotal}
	if !s.subsequence && s.locked != nil {
		p.Matched = s.locked.Count
		p.Frozen = s.locked.HasError
	}
	return p, nil
}

// Reset clears realtime progress on the active line so the actor can take
// the line again from the top. The line itself is kept.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.line == "" {
		return ErrNoActiveLine
	}
	s.locked = linematch.NewLockedState()
	return nil
}

// Partial feeds a partial transcript revision into the session and returns
// updated realtime progress. The transcript is the recognizer's full current
// hypothesis for the utterance, not a delta.
func (s *Session) Partial(ctx context.Context, transcript string) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.line == "" {
		return Progress{}, ErrNoActiveLine
	}

	start := time.Now()
	defer func() {
		s.metrics.CheckDuration.Record(ctx, time.Since(start).Seconds())
		s.metrics.RecordTranscriptUpdate(ctx, "partial")
	}()

	if s.subsequence {
		res := s.eng.SubsequenceMatch(s.line, transcript, s.names)
		return Progress{
			Matched:  res.MatchedCount,
			Total:    s.lineTotal,
			Coverage: res.Coverage,
		}, nil
	}

	s.locked = s.eng.LockedMatch(s.line, transcript, s.locked, s.names)
	return Progress{
		Matched: s.locked.Count,
		Total:   s.lineTotal,
		Frozen:  s.locked.HasError,
	}, nil
}

// Final scores a committed transcript against the active line and returns
// the verdict. On a pass the session clears the active line; on a fail the
// line is kept and realtime progress is reset so the actor can retry.
func (s *Session) Final(ctx context.Context, transcript string) (Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.line == "" {
		return Verdict{}, ErrNoActiveLine
	}

	start := time.Now()
	res := s.eng.CheckAccuracy(s.line, transcript, s.strict, s.names)
	wbw := s.eng.WordByWord(s.line, transcript, s.names)

	s.metrics.CheckDuration.Record(ctx, time.Since(start).Seconds())
	s.metrics.RecordTranscriptUpdate(ctx, "final")
	s.metrics.RecordLineCheck(ctx, res.IsCorrect, res.Accuracy)

	v := Verdict{
		Pass:     res.IsCorrect,
		Accuracy: res.Accuracy,
		Missing:  res.MissingWords,
		Extra:    res.ExtraWords,
		Wrong:    res.WrongWords,
		Words:    wordFeedback(s.line, wbw),
	}

	s.attempts++
	if res.IsCorrect {
		observe.Logger(ctx).Info("line passed",
			"session_id", s.id,
			"accuracy", res.Accuracy,
			"attempts", s.attempts,
			"took", time.Since(s.startedAt),
		)
		s.line = ""
		s.lineTotal = 0
		s.locked = nil
		s.attempts = 0
	} else {
		observe.Logger(ctx).Info("line failed",
			"session_id", s.id,
			"accuracy", res.Accuracy,
			"attempt", s.attempts,
			"missing", len(res.MissingWords),
			"extra", len(res.ExtraWords),
			"wrong", len(res.WrongWords),
		)
		s.locked = linematch.NewLockedState()
	}

	return v, nil
}

// wordFeedback pairs the line's original words with per-slot verdicts.
func wordFeedback(line string, res linematch.WordByWordResult) []WordFeedback {
	tokens := linematch.Tokenize(line)
	if len(tokens) != len(res.Results) {
		return nil
	}
	out := make([]WordFeedback, len(tokens))
	for i, tok := range tokens {
		out[i] = WordFeedback{
			Expected: tok.Normalized,
			Spoken:   res.SpokenWords[i],
			Verdict:  res.Results[i].String(),
		}
	}
	return out
}
