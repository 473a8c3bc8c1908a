// Package mimpierr holds the sentinel errors shared by every internal
// package, so a single errors.Is check works whether the error surfaced
// from the wire, the mailbox, the collective tree, or the runtime.
package mimpierr

import (
	"errors"

	"github.com/mracinowski/mimpi/internal/wire"
)

var (
	// ErrAttemptedSelfOp is returned when a rank targets itself with
	// Send or Recv.
	ErrAttemptedSelfOp = errors.New("mimpi: attempted operation on self")

	// ErrNoSuchRank is returned when a rank argument falls outside [0, size).
	ErrNoSuchRank = errors.New("mimpi: no such rank")

	// ErrRemoteFinished is returned once a peer's channel has closed.
	// It is the same sentinel wire.Send returns, so write failures
	// detected at the framing layer compare equal to failures detected
	// higher up.
	ErrRemoteFinished = wire.ErrRemoteFinished

	// ErrDeadlockDetected is returned by Recv when the pairwise
	// request/outbox protocol observes unsatisfiable mutual waiting.
	ErrDeadlockDetected = errors.New("mimpi: deadlock detected")
)
