package collective

// Collect implements the up-tree reduction half of every collective.
// Each node seeds a working buffer with its own contribution, folds in
// each child's contribution (only once that child's transfer itself
// succeeded), and
// forwards the combined buffer to its parent. recvData, when non-nil,
// receives the fold regardless of the eventual status — mirroring the
// C reference's unconditional memcpy before the parent-send step.
func Collect(t Transport, parent int, children [fanout]int, sendData, recvData []byte, count int, op Op) StatusCode {
	size := count + statusSize
	buf := make([]byte, size)
	if count > 0 {
		copy(buf[:count], sendData)
	}
	buf[count] = byte(StatusSuccess)

	childBuf := make([]byte, size)
	for _, child := range children {
		if child == -1 {
			continue
		}

		err := t.Recv(childBuf, child, groupTag)
		if err != nil {
			buf[count] = byte(combine(StatusCode(buf[count]), statusFromErr(err)))
			continue
		}

		buf[count] = byte(combine(StatusCode(buf[count]), StatusCode(childBuf[count])))
		reduceBytes(buf[:count], childBuf[:count], op)
	}

	if recvData != nil && count > 0 {
		copy(recvData, buf[:count])
	}

	if parent != -1 {
		err := t.Send(buf, parent, groupTag)
		buf[count] = byte(combine(StatusCode(buf[count]), statusFromErr(err)))
	}

	return StatusCode(buf[count])
}
