// Package wire frames arbitrarily sized messages onto a fixed-size
// packet stream. Every packet is PacketSize bytes: a Header followed by
// the leading PrefixSize bytes of the payload. Payload beyond PrefixSize
// follows the packet as a raw, unframed tail.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// PacketSize is the fixed width of every packet written to a channel.
const PacketSize = 512

// headerSize is sizeof(Header) once encoded: 8 bytes for Size, 4 for Tag.
const headerSize = 8 + 4

// PrefixSize is how much of the payload a single packet carries inline.
const PrefixSize = PacketSize - headerSize

// Reserved tags, all negative. User tags are >= 0; tag 0 is the wildcard.
const (
	GroupTag   int32 = -1
	CloseTag   int32 = -2
	RequestTag int32 = -3
)

// AnyTag is the wildcard sentinel for both user-facing receives and the
// outbox/request matching rule; both are unified onto this one value.
const AnyTag int32 = 0

// ErrRemoteFinished indicates the peer closed its end of the channel
// before a full packet (or its tail) could be written. Read failures are
// reported as io.EOF instead (see readFull).
var ErrRemoteFinished = errors.New("wire: remote finished")

// Header is the fixed record carried by every packet.
type Header struct {
	Size uint64
	Tag  int32
}

// Match reports whether two (size, tag) pairs match: sizes must be
// equal, and either tag must be the wildcard or the tags must be equal.
// This single predicate governs inbox-to-user matching, outbox-to-request
// matching, and the deadlock correlation.
func Match(sizeA uint64, tagA int32, sizeB uint64, tagB int32) bool {
	if sizeA != sizeB {
		return false
	}
	return tagA == AnyTag || tagB == AnyTag || tagA == tagB
}

// encodeHeader writes h into the first headerSize bytes of buf.
func encodeHeader(buf []byte, h Header) {
	binary.BigEndian.PutUint64(buf[0:8], h.Size)
	binary.BigEndian.PutUint32(buf[8:12], uint32(h.Tag))
}

func decodeHeader(buf []byte) Header {
	return Header{
		Size: binary.BigEndian.Uint64(buf[0:8]),
		Tag:  int32(binary.BigEndian.Uint32(buf[8:12])),
	}
}

// writeFull writes all of buf to w, translating any short write or error
// into ErrRemoteFinished — the channel is assumed reliable and ordered,
// so a partial write means the peer's end has gone away.
func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if n < 0 || n > len(buf) {
			return ErrRemoteFinished
		}
		buf = buf[n:]
		if err != nil {
			if len(buf) == 0 {
				return nil
			}
			return ErrRemoteFinished
		}
	}
	return nil
}

// readFull reads exactly len(buf) bytes from r. Any error, including
// io.EOF, is reported as io.EOF so callers can treat it uniformly as
// "the peer is gone."
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return io.EOF
	}
	return nil
}

// EncodeRequestPayload packs the (tag, size) a rank is about to block on
// into the payload of a REQUEST_TAG frame, so the peer's Receiver can
// correlate it against that peer's own Outbox.
func EncodeRequestPayload(tag int32, size uint64) []byte {
	buf := make([]byte, headerSize)
	encodeHeader(buf, Header{Size: size, Tag: tag})
	return buf
}

// DecodeRequestPayload unpacks a REQUEST_TAG payload built by
// EncodeRequestPayload. ok is false if data is malformed.
func DecodeRequestPayload(data []byte) (tag int32, size uint64, ok bool) {
	if len(data) != headerSize {
		return 0, 0, false
	}
	h := decodeHeader(data)
	return h.Tag, h.Size, true
}

// Send serializes (tag, data) as one or more packets and writes them to w.
// The first PrefixSize bytes of data ride in the packet itself; anything
// beyond that follows as a raw tail with no further framing.
func Send(w io.Writer, tag int32, data []byte) error {
	var packet [PacketSize]byte
	encodeHeader(packet[:headerSize], Header{Size: uint64(len(data)), Tag: tag})

	prefixLen := len(data)
	if prefixLen > PrefixSize {
		prefixLen = PrefixSize
	}
	copy(packet[headerSize:], data[:prefixLen])

	if err := writeFull(w, packet[:]); err != nil {
		return err
	}
	if len(data) <= prefixLen {
		return nil
	}
	return writeFull(w, data[prefixLen:])
}

// Receive reads exactly one packet from r and reconstructs (tag, data).
// A zero-length payload is returned as a non-nil, zero-length slice,
// with no allocation beyond the packet itself.
func Receive(r io.Reader) (tag int32, data []byte, err error) {
	var packet [PacketSize]byte
	if err := readFull(r, packet[:]); err != nil {
		return 0, nil, err
	}
	h := decodeHeader(packet[:headerSize])

	if h.Size == 0 {
		return h.Tag, []byte{}, nil
	}

	data = make([]byte, h.Size)
	prefixLen := uint64(len(data))
	if prefixLen > PrefixSize {
		prefixLen = PrefixSize
	}
	copy(data, packet[headerSize:headerSize+int(prefixLen)])

	if h.Size <= PrefixSize {
		return h.Tag, data, nil
	}

	if err := readFull(r, data[PrefixSize:]); err != nil {
		return 0, nil, err
	}
	return h.Tag, data, nil
}
