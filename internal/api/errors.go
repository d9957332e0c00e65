package api

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxUserLength is the longest accepted leaderboard name, in runes.
const MaxUserLength = 32

// Validation errors returned for bad submissions.
var (
	ErrUserBlank     = errors.New("user cannot be blank")
	ErrUserTooLong   = fmt.Errorf("user must be at most %d characters", MaxUserLength)
	ErrScoreMissing  = errors.New("score is required")
	ErrScoreNegative = errors.New("score must be >= 0")
	ErrScoreTooLarge = errors.New("score is too large")
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// ScoreRequest is the body of POST /api/scores.
type ScoreRequest struct {
	User  string `json:"user"`
	Score *int64 `json:"score"`
}

// Validate returns every problem with the request, joined.
func (r ScoreRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.User) == "" {
		errs = append(errs, ErrUserBlank)
	} else if utf8.RuneCountInString(r.User) > MaxUserLength {
		errs = append(errs, ErrUserTooLong)
	}
	switch {
	case r.Score == nil:
		errs = append(errs, ErrScoreMissing)
	case *r.Score < 0:
		errs = append(errs, ErrScoreNegative)
	case *r.Score > math.MaxInt32:
		errs = append(errs, ErrScoreTooLarge)
	}
	return errors.Join(errs...)
}

// fieldErrors splits a joined validation error into its messages.
func fieldErrors(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		msgs := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
