// Package mailbox implements the per-peer Inbox and Outbox: the
// single-producer/single-consumer arrival queue a Receiver goroutine
// appends to, and the shadow log of unmatched sends a rank's own thread
// pushes to and pops from.
package mailbox

import (
	"github.com/mracinowski/mimpi/internal/mimpierr"
	"github.com/mracinowski/mimpi/internal/wire"
)

type entryType int

const (
	entryGuard entryType = iota
	entryMessage
	entryRequest
	entryClose
	entryDeadlock
)

// node is one link in the Inbox's singly-linked queue. ready is closed
// exactly once by the producer after every other field has been written;
// a closed channel stays permanently receivable, which is what lets the
// consumer re-inspect an already-resolved node on a later Retrieve call
// without blocking (the Go analogue of the C reference's "sem_wait then
// immediately sem_post" trick to keep its semaphore signaled).
type node struct {
	typ   entryType
	tag   int32
	size  uint64
	data  []byte
	next  *node
	ready chan struct{}
}

func newNode() *node {
	return &node{typ: entryGuard, ready: make(chan struct{})}
}

// Inbox is a per-peer FIFO of arrivals: data messages, match requests,
// and a terminal close marker. Exactly one producer (a Receiver
// goroutine) appends via Save*/Close; exactly one consumer (the user
// thread) calls Retrieve. front is a permanently-signaled head guard;
// back is the not-yet-signaled tail sentinel the next Save* call fills in.
type Inbox struct {
	front *node // owned by the consumer; never reassigned after Init
	back  *node // owned by the producer
}

// Init allocates the front guard and back sentinel. Must be called
// before the Receiver goroutine or any Retrieve call starts.
func (ib *Inbox) Init() {
	ib.front = newNode()
	close(ib.front.ready)
	ib.back = newNode()
	ib.front.next = ib.back
}

// save appends a fully-populated node to the tail and publishes it.
// Producer-only.
func (ib *Inbox) save(typ entryType, tag int32, size uint64, data []byte) {
	tail := ib.back
	ib.back = newNode()

	tail.typ = typ
	tail.tag = tag
	tail.size = size
	tail.data = data
	tail.next = ib.back
	close(tail.ready)
}

// SaveMessage enqueues a data arrival, handing off ownership of data.
func (ib *Inbox) SaveMessage(tag int32, size uint64, data []byte) {
	ib.save(entryMessage, tag, size, data)
}

// SaveRequest enqueues a deadlock-detection REQUEST from the peer.
func (ib *Inbox) SaveRequest(tag int32, size uint64) {
	ib.save(entryRequest, tag, size, nil)
}

// Close enqueues the terminal CLOSE marker. No further Save* calls may
// follow.
func (ib *Inbox) Close() {
	ib.save(entryClose, 0, 0, nil)
}

// OutboxPopper is satisfied by the peer's own Outbox: when this Inbox's
// Retrieve walks past a REQUEST from that peer, it asks the Outbox
// whether a past send of ours can satisfy it.
type OutboxPopper interface {
	Pop(tag int32, size uint64) bool
}

// Retrieve walks the queue from front, waiting on each node's ready
// signal, transparently consuming REQUEST/DEADLOCK control entries, and
// returning the first MESSAGE node matching (tag, size). Matching
// messages are copied into out (which must have length size) and
// unlinked; non-matching messages are left in place so a later Retrieve
// with a different predicate still finds them in order.
//
// detectDeadlock enables REQUEST/DEADLOCK handling; when disabled these
// entries are skipped without being unlinked. outbox is consulted only
// when detectDeadlock is true.
func (ib *Inbox) Retrieve(tag int32, size uint64, out []byte, detectDeadlock bool, outbox OutboxPopper) error {
	previous := ib.front
	current := ib.front

	for {
		previous = current
		current = current.next
		<-current.ready

		switch current.typ {
		case entryClose:
			return mimpierr.ErrRemoteFinished

		case entryRequest:
			if !detectDeadlock {
				continue
			}
			reqTag, reqSize := current.tag, current.size
			previous.next = current.next
			current = previous
			if outbox.Pop(reqTag, reqSize) {
				continue
			}
			return mimpierr.ErrDeadlockDetected

		case entryDeadlock:
			if !detectDeadlock {
				continue
			}
			previous.next = current.next
			current = previous
			continue

		case entryMessage:
			if wire.Match(current.size, current.tag, size, tag) {
				copy(out, current.data)
				previous.next = current.next
				return nil
			}
			continue
		}
	}
}
