package collective

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mracinowski/mimpi/internal/mimpierr"
)

func TestPrecedenceOrdering(t *testing.T) {
	require.Equal(t, StatusNoSuchRank, combine(StatusNoSuchRank, StatusAttemptedSelfOp))
	require.Equal(t, StatusAttemptedSelfOp, combine(StatusAttemptedSelfOp, StatusRemoteFinished))
	require.Equal(t, StatusRemoteFinished, combine(StatusRemoteFinished, StatusDeadlockDetected))
	require.Equal(t, StatusDeadlockDetected, combine(StatusDeadlockDetected, StatusSuccess))
	require.Equal(t, StatusSuccess, combine(StatusSuccess, StatusSuccess))
}

func TestCombineIsOrderIndependent(t *testing.T) {
	require.Equal(t, combine(StatusRemoteFinished, StatusNoSuchRank), combine(StatusNoSuchRank, StatusRemoteFinished))
}

func TestStatusFromErrRoundTrip(t *testing.T) {
	cases := []struct {
		err    error
		status StatusCode
	}{
		{nil, StatusSuccess},
		{mimpierr.ErrAttemptedSelfOp, StatusAttemptedSelfOp},
		{mimpierr.ErrNoSuchRank, StatusNoSuchRank},
		{mimpierr.ErrDeadlockDetected, StatusDeadlockDetected},
		{mimpierr.ErrRemoteFinished, StatusRemoteFinished},
	}
	for _, c := range cases {
		got := statusFromErr(c.err)
		require.Equal(t, c.status, got)
		if c.err == nil {
			require.NoError(t, StatusToErr(got))
		} else {
			require.ErrorIs(t, StatusToErr(got), c.err)
		}
	}
}
