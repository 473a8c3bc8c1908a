package runtime

import "github.com/mracinowski/mimpi/internal/collective"

// rawTransport adapts World's raw send/recv (no Outbox bookkeeping, no
// REQUEST frames) to collective.Transport, so Collect/Distribute never
// risk tripping the deadlock-detection protocol against GROUP_TAG
// traffic.
type rawTransport struct{ w *World }

func (t rawTransport) Send(data []byte, dst int, tag int32) error {
	return t.w.rawSend(data, dst, tag)
}

func (t rawTransport) Recv(buf []byte, src int, tag int32) error {
	return t.w.rawRecv(buf, src, tag)
}

// Barrier synchronizes every rank in the world.
func (w *World) Barrier() error {
	err := collective.Barrier(rawTransport{w}, w.rank, w.size)
	w.countCollective("barrier", err)
	return err
}

// Bcast fans data out from root to every rank.
func (w *World) Bcast(data []byte, count, root int) error {
	err := collective.Bcast(rawTransport{w}, data, count, root, w.rank, w.size)
	w.countCollective("bcast", err)
	return err
}

// Reduce folds sendData from every rank under op into recvData at root.
func (w *World) Reduce(sendData, recvData []byte, count int, op collective.Op, root int) error {
	err := collective.Reduce(rawTransport{w}, sendData, recvData, count, op, root, w.rank, w.size)
	w.countCollective("reduce", err)
	return err
}

func (w *World) countCollective(kind string, err error) {
	if w.metrics == nil {
		return
	}
	w.metrics.CollectivesTotal.WithLabelValues(kind, outcomeLabel(err)).Inc()
}
