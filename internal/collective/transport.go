package collective

import "github.com/mracinowski/mimpi/internal/wire"

// Transport is the point-to-point primitive Collect/Distribute build on.
// runtime's raw (non-Outbox-tracking) send/recv satisfy it; the
// interface exists so this package never imports runtime, which itself
// imports collective for the composed Barrier/Bcast/Reduce entry points.
type Transport interface {
	Send(data []byte, dst int, tag int32) error
	Recv(buf []byte, src int, tag int32) error
}

// groupTag is the reserved tag every collective payload travels under.
const groupTag = wire.GroupTag
