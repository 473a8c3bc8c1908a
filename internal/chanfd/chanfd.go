// Package chanfd computes the descriptor layout mimpirun wires each
// worker with. mimpirun.c places every pipe end at a fixed offset,
// computed from CHANNEL_TABLE plus a source*size+destination index, so
// a child can dup2 the ones it needs into MIMPI_CHANNEL_READER/WRITER
// slots without any coordination beyond its own rank. exec.Cmd.ExtraFiles
// is the Go idiom for that same fixed-offset handoff: instead of raw fd
// numbers, this package computes each peer's position within one rank's
// ExtraFiles slice.
package chanfd

// peerIndex returns peer's position among rank's size-1 peers, ordered
// ascending with rank itself removed. This is the Go analogue
// of mimpirun.c's CHANNEL_TABLE arithmetic, reduced to a slice index
// instead of a raw file descriptor number.
func peerIndex(rank, peer, size int) int {
	if peer < rank {
		return peer
	}
	return peer - 1
}

// ReaderSlot returns the index, within rank's ExtraFiles slice, of the
// read end of the pipe carrying peer's traffic into rank.
func ReaderSlot(rank, peer, size int) int {
	return peerIndex(rank, peer, size)
}

// WriterSlot returns the index, within rank's ExtraFiles slice, of the
// write end of the pipe carrying rank's traffic to peer.
func WriterSlot(rank, peer, size int) int {
	return (size - 1) + peerIndex(rank, peer, size)
}

// ExtraFilesLen is how many descriptors a size-rank world hands to each
// child: one reader and one writer per other rank.
func ExtraFilesLen(size int) int {
	return 2 * (size - 1)
}

// extraFilesFD is the first fd number Go assigns to exec.Cmd.ExtraFiles
// entries in the child process: fd 0-2 are stdin/stdout/stderr, so
// ExtraFiles[0] always lands on fd 3.
const extraFilesFD = 3

// ReaderFD and WriterFD return the child-process fd number (not the
// ExtraFiles slice index) for a peer's reader/writer descriptor. The
// child computes it from its own rank and the world size alone and
// passes it to os.NewFile; no fd number travels through the environment.
func ReaderFD(rank, peer, size int) int {
	return extraFilesFD + ReaderSlot(rank, peer, size)
}

func WriterFD(rank, peer, size int) int {
	return extraFilesFD + WriterSlot(rank, peer, size)
}
