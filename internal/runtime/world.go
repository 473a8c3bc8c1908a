// Package runtime holds the process-wide state a rank needs once
// initialized: per-peer Inboxes/Outboxes, the background Receiver
// goroutines, and the point-to-point and collective entry points built
// on top of them.
package runtime

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/mracinowski/mimpi/internal/mailbox"
	"github.com/mracinowski/mimpi/internal/metrics"
	"github.com/mracinowski/mimpi/internal/mlog"
)

// PeerLink is the pre-wired, fixed-descriptor byte channel to one peer:
// an inbound stream this rank reads from, and an outbound stream this
// rank writes to. The launcher (cmd/mimpirun, or any other job
// launcher) is responsible for supplying these already connected.
type PeerLink struct {
	Reader io.ReadCloser
	Writer io.WriteCloser
}

// World is the per-process runtime state: rank, size, and the
// Inbox/Outbox/Receiver machinery for every other rank. It is created
// by Init and torn down exactly once by Finalize.
type World struct {
	rank           int
	size           int
	detectDeadlock bool

	links    []PeerLink
	inboxes  []mailbox.Inbox
	outboxes []mailbox.Outbox

	wg  sync.WaitGroup
	log *zap.SugaredLogger

	metrics *metrics.Collectors
}

// New allocates Inboxes (and Outboxes, if detectDeadlock) for every
// peer and starts a Receiver goroutine per peer. links must have
// length size, with links[rank] unused.
func New(rank, size int, detectDeadlock bool, links []PeerLink, mc *metrics.Collectors) *World {
	w := &World{
		rank:           rank,
		size:           size,
		detectDeadlock: detectDeadlock,
		links:          links,
		inboxes:        make([]mailbox.Inbox, size),
		log:            mlog.Named("runtime"),
		metrics:        mc,
	}
	if detectDeadlock {
		w.outboxes = make([]mailbox.Outbox, size)
	}

	for peer := 0; peer < size; peer++ {
		if peer == rank {
			continue
		}
		w.inboxes[peer].Init()
		w.wg.Add(1)
		go w.receiveLoop(peer)
	}
	return w
}

// Rank returns this process's rank.
func (w *World) Rank() int { return w.rank }

// Size returns the world size.
func (w *World) Size() int { return w.size }

// Finalize sends a CLOSE frame to every peer, closes the outbound
// channels, joins every Receiver, and releases Inbox/Outbox state.
// Senders run before Receivers are joined so peers observe orderly
// shutdown before we wait on our own inbound channels closing.
func (w *World) Finalize() {
	for peer := 0; peer < w.size; peer++ {
		if peer == w.rank {
			continue
		}
		_ = rawWriteClose(w.links[peer].Writer)
	}

	w.wg.Wait()

	for peer := 0; peer < w.size; peer++ {
		if peer == w.rank {
			continue
		}
		w.outboxDestroy(peer)
	}

	w.log.Debugw("finalized", "rank", w.rank)
}

// rawWriteClose sends the CLOSE frame and closes the outbound
// descriptor. It never returns an error the caller must act on:
// Finalize must be safe to call regardless of prior errors.
func rawWriteClose(w io.WriteCloser) error {
	sendCloseFrame(w)
	return w.Close()
}

func (w *World) outboxDestroy(peer int) {
	if w.detectDeadlock {
		w.outboxes[peer].Destroy()
	}
}
