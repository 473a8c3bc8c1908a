package mailbox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mracinowski/mimpi/internal/mailbox"
)

func TestOutboxPushPop(t *testing.T) {
	var ob mailbox.Outbox

	require.False(t, ob.Pop(1, 4))

	ob.Push(1, 4)
	ob.Push(2, 8)

	require.True(t, ob.Pop(2, 8))
	require.False(t, ob.Pop(2, 8), "already popped")
	require.True(t, ob.Pop(1, 4))
}

func TestOutboxWildcardMatch(t *testing.T) {
	var ob mailbox.Outbox
	ob.Push(5, 16)

	require.True(t, ob.Pop(0, 16))
}

func TestOutboxDestroyIsIdempotent(t *testing.T) {
	var ob mailbox.Outbox
	ob.Push(1, 1)
	ob.Destroy()
	ob.Destroy()
}
