package mailbox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mracinowski/mimpi/internal/mailbox"
	"github.com/mracinowski/mimpi/internal/mimpierr"
)

type fakePopper struct {
	match bool
}

func (f fakePopper) Pop(tag int32, size uint64) bool { return f.match }

func TestInboxRetrieveMatchesInOrder(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()

	ib.SaveMessage(1, 3, []byte("abc"))
	ib.SaveMessage(2, 3, []byte("def"))

	out := make([]byte, 3)
	require.NoError(t, ib.Retrieve(1, 3, out, false, nil))
	require.Equal(t, "abc", string(out))

	require.NoError(t, ib.Retrieve(2, 3, out, false, nil))
	require.Equal(t, "def", string(out))
}

func TestInboxRetrieveSkipsNonMatchingUntilLaterCall(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()

	ib.SaveMessage(1, 3, []byte("one"))
	ib.SaveMessage(2, 3, []byte("two"))

	out := make([]byte, 3)
	// First ask for tag 2: must skip tag 1's message without consuming it.
	require.NoError(t, ib.Retrieve(2, 3, out, false, nil))
	require.Equal(t, "two", string(out))

	// tag 1's message is still there, in its original position.
	require.NoError(t, ib.Retrieve(1, 3, out, false, nil))
	require.Equal(t, "one", string(out))
}

func TestInboxRetrieveWildcard(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()
	ib.SaveMessage(9, 2, []byte("hi"))

	out := make([]byte, 2)
	require.NoError(t, ib.Retrieve(0, 2, out, false, nil))
	require.Equal(t, "hi", string(out))
}

func TestInboxCloseReturnsRemoteFinished(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()
	ib.Close()

	out := make([]byte, 1)
	err := ib.Retrieve(0, 1, out, false, nil)
	require.ErrorIs(t, err, mimpierr.ErrRemoteFinished)
}

func TestInboxRequestSkippedWhenDetectionDisabled(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()
	ib.SaveRequest(1, 4)
	ib.Close()

	out := make([]byte, 1)
	err := ib.Retrieve(0, 1, out, false, nil)
	require.ErrorIs(t, err, mimpierr.ErrRemoteFinished)
}

func TestInboxRequestSatisfiedByOutbox(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()
	ib.SaveRequest(1, 4)
	ib.SaveMessage(5, 2, []byte("hi"))

	out := make([]byte, 2)
	err := ib.Retrieve(5, 2, out, true, fakePopper{match: true})
	require.NoError(t, err)
	require.Equal(t, "hi", string(out))
}

func TestInboxRequestUnsatisfiedIsDeadlock(t *testing.T) {
	var ib mailbox.Inbox
	ib.Init()
	ib.SaveRequest(1, 4)

	out := make([]byte, 2)
	err := ib.Retrieve(5, 2, out, true, fakePopper{match: false})
	require.ErrorIs(t, err, mimpierr.ErrDeadlockDetected)
}
