package runtime

import (
	"strconv"

	"github.com/mracinowski/mimpi/internal/mailbox"
	"github.com/mracinowski/mimpi/internal/mimpierr"
	"github.com/mracinowski/mimpi/internal/wire"
)

// Send delivers data to dst under tag, then, if deadlock detection is
// enabled, records the send in dst's Outbox so a later REQUEST from dst
// can be satisfied.
func (w *World) Send(data []byte, dst int, tag int32) error {
	if err := w.checkPeer(dst); err != nil {
		w.countSend(err)
		return err
	}

	err := w.rawSend(data, dst, tag)
	if err == nil && w.detectDeadlock {
		w.outboxes[dst].Push(tag, uint64(len(data)))
	}
	w.countSend(err)
	if err == nil {
		w.countBytesSent(dst, len(data))
	}
	return err
}

// Recv blocks until a message matching (tag, len(buf)) arrives from src,
// copying it into buf. When deadlock detection is enabled it first sends
// a REQUEST frame to src, so src's own Recv can notice mutual waiting.
func (w *World) Recv(buf []byte, src int, tag int32) error {
	if err := w.checkPeer(src); err != nil {
		w.countRecv(err)
		return err
	}

	if w.detectDeadlock {
		payload := wire.EncodeRequestPayload(tag, uint64(len(buf)))
		if err := wire.Send(w.links[src].Writer, wire.RequestTag, payload); err != nil {
			w.countRecv(err)
			return err
		}
	}

	err := w.rawRecv(buf, src, tag)
	w.countRecv(err)
	if err == nil {
		w.countBytesReceived(src, len(buf))
	}
	if err == mimpierr.ErrDeadlockDetected {
		w.log.Debugw("deadlock detected", "peer", src, "tag", tag, "size", len(buf))
	}
	if err == mimpierr.ErrDeadlockDetected && w.metrics != nil {
		w.metrics.DeadlocksTotal.Inc()
	}
	return err
}

// rawSend writes data straight to the wire with no Outbox bookkeeping.
// Collective traffic uses this directly: Collect/Distribute never touch
// the Outbox, since GROUP_TAG exchanges cannot deadlock against user
// code.
func (w *World) rawSend(data []byte, dst int, tag int32) error {
	if err := w.checkPeer(dst); err != nil {
		return err
	}
	return wire.Send(w.links[dst].Writer, tag, data)
}

// rawRecv retrieves straight from src's Inbox with no REQUEST frame and
// no self/range validation, matching the internal recv collectives use.
func (w *World) rawRecv(buf []byte, src int, tag int32) error {
	var popper mailbox.OutboxPopper
	if w.detectDeadlock {
		popper = &w.outboxes[src]
	}
	return w.inboxes[src].Retrieve(tag, uint64(len(buf)), buf, w.detectDeadlock, popper)
}

func (w *World) checkPeer(rank int) error {
	if rank == w.rank {
		return mimpierr.ErrAttemptedSelfOp
	}
	if rank < 0 || rank >= w.size {
		return mimpierr.ErrNoSuchRank
	}
	return nil
}

func (w *World) countSend(err error) {
	if w.metrics == nil {
		return
	}
	w.metrics.SendsTotal.WithLabelValues(outcomeLabel(err)).Inc()
}

func (w *World) countRecv(err error) {
	if w.metrics == nil {
		return
	}
	w.metrics.RecvsTotal.WithLabelValues(outcomeLabel(err)).Inc()
}

func (w *World) countBytesSent(dst, n int) {
	if w.metrics == nil {
		return
	}
	w.metrics.BytesSent.WithLabelValues(rankLabel(dst)).Add(float64(n))
}

func (w *World) countBytesReceived(src, n int) {
	if w.metrics == nil {
		return
	}
	w.metrics.BytesReceived.WithLabelValues(rankLabel(src)).Add(float64(n))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case err == mimpierr.ErrAttemptedSelfOp:
		return "attempted_self_op"
	case err == mimpierr.ErrNoSuchRank:
		return "no_such_rank"
	case err == mimpierr.ErrDeadlockDetected:
		return "deadlock_detected"
	default:
		return "remote_finished"
	}
}

func rankLabel(rank int) string {
	return strconv.Itoa(rank)
}
