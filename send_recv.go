package mimpi

// Send delivers data[:count] to dst under tag.
func Send(data []byte, count, dst int, tag int32) error {
	return currentWorld().Send(data[:count], dst, tag)
}

// Recv blocks until a message matching (tag, count) arrives from src,
// copying it into buf[:count].
func Recv(buf []byte, count, src int, tag int32) error {
	return currentWorld().Recv(buf[:count], src, tag)
}
