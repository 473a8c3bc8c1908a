package collective

import (
	"errors"

	"github.com/mracinowski/mimpi/internal/mimpierr"
)

// StatusCode is the wire-encodable form of a Retcode: one byte appended
// to every collective payload so Collect/Distribute can fold errors
// across the tree the same way the payload itself is folded.
type StatusCode uint8

const (
	StatusSuccess StatusCode = iota
	StatusAttemptedSelfOp
	StatusNoSuchRank
	StatusRemoteFinished
	StatusDeadlockDetected
)

// statusSize is the one-byte width appended to every collective's
// count-sized payload buffer — a status never leaves a homogeneous
// fleet of Go processes, so one byte is all it needs.
const statusSize = 1

// precedence ranks each status from least to most dominant: NO_SUCH_RANK
// beats ATTEMPTED_SELF_OP beats REMOTE_FINISHED beats DEADLOCK_DETECTED
// beats SUCCESS, so a fold across the tree always keeps the worst
// outcome any participant observed.
func precedence(s StatusCode) int {
	switch s {
	case StatusNoSuchRank:
		return 4
	case StatusAttemptedSelfOp:
		return 3
	case StatusRemoteFinished:
		return 2
	case StatusDeadlockDetected:
		return 1
	default:
		return 0
	}
}

// combine folds two statuses, keeping whichever dominates per precedence.
func combine(a, b StatusCode) StatusCode {
	if precedence(b) > precedence(a) {
		return b
	}
	return a
}

// statusFromErr maps a Recv/Send error onto its wire status code.
func statusFromErr(err error) StatusCode {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, mimpierr.ErrAttemptedSelfOp):
		return StatusAttemptedSelfOp
	case errors.Is(err, mimpierr.ErrNoSuchRank):
		return StatusNoSuchRank
	case errors.Is(err, mimpierr.ErrDeadlockDetected):
		return StatusDeadlockDetected
	default:
		return StatusRemoteFinished
	}
}

// StatusToErr maps a folded status back onto the public sentinel error,
// nil on success.
func StatusToErr(s StatusCode) error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusAttemptedSelfOp:
		return mimpierr.ErrAttemptedSelfOp
	case StatusNoSuchRank:
		return mimpierr.ErrNoSuchRank
	case StatusDeadlockDetected:
		return mimpierr.ErrDeadlockDetected
	default:
		return mimpierr.ErrRemoteFinished
	}
}
