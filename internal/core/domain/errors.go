package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recommendation failures so callers can branch on the
// kind instead of parsing messages.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// MalformedRecord: a single raw record could not be normalized.
	MalformedRecord
	// StrategyFailed: one retrieval strategy errored or returned nothing.
	StrategyFailed
	// NoCandidatesFound: every strategy failed or the merged pool is empty.
	NoCandidatesFound
	// EmptyAfterFilter: filters removed every candidate.
	EmptyAfterFilter
	// InvalidMood: the mood label is not one of the supported moods.
	InvalidMood
	// EmptyPool: the ranker was handed zero candidates.
	EmptyPool
	// SeedNotFound: the seed query was empty or matched nothing.
	SeedNotFound
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrStrategyFailed    = errors.New("strategy failed")
	ErrNoCandidatesFound = errors.New("no candidates found")
	ErrEmptyAfterFilter  = errors.New("no candidates match the filters")
	ErrInvalidMood       = errors.New("invalid mood")
	ErrEmptyPool         = errors.New("empty candidate pool")
	ErrSeedNotFound      = errors.New("seed track not found")
)

var kindSentinels = map[ErrorKind]error{
	MalformedRecord:   ErrMalformedRecord,
	StrategyFailed:    ErrStrategyFailed,
	NoCandidatesFound: ErrNoCandidatesFound,
	EmptyAfterFilter:  ErrEmptyAfterFilter,
	InvalidMood:       ErrInvalidMood,
	EmptyPool:         ErrEmptyPool,
	SeedNotFound:      ErrSeedNotFound,
}

var kindNames = map[ErrorKind]string{
	MalformedRecord:   "MALFORMED_RECORD",
	StrategyFailed:    "STRATEGY_FAILED",
	NoCandidatesFound: "NO_CANDIDATES_FOUND",
	EmptyAfterFilter:  "EMPTY_AFTER_FILTER",
	InvalidMood:       "INVALID_MOOD",
	EmptyPool:         "EMPTY_POOL",
	SeedNotFound:      "SEED_NOT_FOUND",
}

// String returns the stable reason code for the kind, e.g. "EMPTY_POOL".
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Error is a classified recommendation error.
type Error struct {
	Kind   ErrorKind
	Op     string // operation that failed, e.g. "aggregate"
	Detail string
	Err    error // underlying cause, may be nil
}

// NewError constructs a classified error.
func NewError(kind ErrorKind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Op + ": "
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		msg += sentinel.Error()
	} else {
		msg += "unknown error"
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
