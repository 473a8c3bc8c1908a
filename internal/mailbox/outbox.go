package mailbox

import "github.com/mracinowski/mimpi/internal/wire"

// outboxEntry is one unmatched send.
type outboxEntry struct {
	tag  int32
	size uint64
	next *outboxEntry
}

// Outbox is a per-peer LIFO log of successful sends that peer's Recv has
// not yet been proven to have consumed, used only when deadlock
// detection is enabled. It is touched only by the owning rank's own
// goroutine (on Push during Send, and on Pop while that rank's own
// Inbox consumes a REQUEST from this peer), so no locking is needed
// here.
type Outbox struct {
	top *outboxEntry
}

// Push prepends a node. Never fails.
func (ob *Outbox) Push(tag int32, size uint64) {
	ob.top = &outboxEntry{tag: tag, size: size, next: ob.top}
}

// Pop removes and reports the first entry matching (tag, size),
// searching from the head. Returns false if no entry matches.
func (ob *Outbox) Pop(tag int32, size uint64) bool {
	var prev *outboxEntry
	for entry := ob.top; entry != nil; entry = entry.next {
		if !wire.Match(entry.size, entry.tag, size, tag) {
			prev = entry
			continue
		}
		if prev != nil {
			prev.next = entry.next
		} else {
			ob.top = entry.next
		}
		return true
	}
	return false
}

// Destroy releases all remaining nodes. In Go this only drops the
// reference to the chain, leaving the garbage collector to reclaim it;
// the exported name documents the lifecycle point where the C
// reference's explicit free loop runs.
func (ob *Outbox) Destroy() {
	ob.top = nil
}
