package collective

// Distribute implements the fan-out half of every collective. The root
// seeds the buffer from recvData; every other node receives it from its
// parent, which
// replaces whatever initialStatus it held with the parent's own
// forwarded status folded with the outcome of that Recv — matching the
// C reference's pointer-aliasing behavior where the parent's payload
// physically overwrites the local status byte before it is read.
func Distribute(t Transport, parent int, children [fanout]int, recvData []byte, count int, initialStatus StatusCode) StatusCode {
	size := count + statusSize
	buf := make([]byte, size)
	buf[count] = byte(initialStatus)

	if parent == -1 {
		if count > 0 {
			copy(buf[:count], recvData)
		}
	} else {
		err := t.Recv(buf, parent, groupTag)
		buf[count] = byte(combine(StatusCode(buf[count]), statusFromErr(err)))
	}

	for _, child := range children {
		if child == -1 {
			continue
		}
		err := t.Send(buf, child, groupTag)
		buf[count] = byte(combine(StatusCode(buf[count]), statusFromErr(err)))
	}

	status := StatusCode(buf[count])
	if parent != -1 && status == StatusSuccess {
		copy(recvData, buf[:count])
	}
	return status
}
