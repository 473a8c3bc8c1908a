package runtime

import (
	"io"

	"github.com/mracinowski/mimpi/internal/wire"
)

// receiveLoop is the Receiver task for one peer: it owns that peer's
// inbound channel exclusively, decodes one frame at
// a time, and appends to that peer's Inbox. It exits when the channel
// closes (io.EOF from wire.Receive) or a CLOSE frame arrives, either
// way enqueueing the terminal CLOSE marker before returning.
func (w *World) receiveLoop(peer int) {
	defer w.wg.Done()

	reader := w.links[peer].Reader
	inbox := &w.inboxes[peer]

	for {
		tag, data, err := wire.Receive(reader)
		if err != nil {
			break
		}
		if tag == wire.CloseTag {
			break
		}
		if tag == wire.RequestTag {
			if reqTag, reqSize, ok := wire.DecodeRequestPayload(data); ok {
				inbox.SaveRequest(reqTag, reqSize)
			}
			continue
		}
		inbox.SaveMessage(tag, uint64(len(data)), data)
	}

	_ = reader.Close()
	inbox.Close()

	w.log.Debugw("receiver exiting", "peer", peer)
}

// sendCloseFrame writes the CLOSE_TAG frame that tells a peer's Receiver
// to stop. Its own error is ignored: if the peer is already gone the
// Close() that follows is what actually matters.
func sendCloseFrame(w io.Writer) {
	_ = wire.Send(w, wire.CloseTag, nil)
}
