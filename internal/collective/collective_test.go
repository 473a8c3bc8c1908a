package collective

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// hub wires an unbuffered channel between every ordered pair of ranks,
// standing in for the runtime's per-peer channel during tests of the
// tree logic in isolation from the wire/mailbox layers.
type hub struct {
	channels map[[2]int]chan []byte
}

func newHub(size int) *hub {
	h := &hub{channels: make(map[[2]int]chan []byte)}
	for src := 0; src < size; src++ {
		for dst := 0; dst < size; dst++ {
			if src == dst {
				continue
			}
			h.channels[[2]int{src, dst}] = make(chan []byte)
		}
	}
	return h
}

type hubTransport struct {
	h    *hub
	rank int
}

func (t hubTransport) Send(data []byte, dst int, tag int32) error {
	cp := append([]byte(nil), data...)
	t.h.channels[[2]int{t.rank, dst}] <- cp
	return nil
}

func (t hubTransport) Recv(buf []byte, src int, tag int32) error {
	data := <-t.h.channels[[2]int{src, t.rank}]
	copy(buf, data)
	return nil
}

func runAll(size int, fn func(rank int, t Transport)) {
	h := newHub(size)
	var wg sync.WaitGroup
	wg.Add(size)
	for rank := 0; rank < size; rank++ {
		rank := rank
		go func() {
			defer wg.Done()
			fn(rank, hubTransport{h: h, rank: rank})
		}()
	}
	wg.Wait()
}

func TestBarrierAllRanksSucceed(t *testing.T) {
	const size = 4
	errs := make([]error, size)
	runAll(size, func(rank int, tr Transport) {
		errs[rank] = Barrier(tr, rank, size)
	})
	for rank, err := range errs {
		require.NoErrorf(t, err, "rank %d", rank)
	}
}

func TestBcastDeliversRootData(t *testing.T) {
	const size = 4
	const root = 2
	const count = 8

	rootData := make([]byte, count)
	for i := range rootData {
		rootData[i] = byte(i)
	}

	got := make([][]byte, size)
	errs := make([]error, size)

	runAll(size, func(rank int, tr Transport) {
		buf := make([]byte, count)
		if rank == root {
			copy(buf, rootData)
		}
		errs[rank] = Bcast(tr, buf, count, root, rank, size)
		got[rank] = buf
	})

	for rank := 0; rank < size; rank++ {
		require.NoErrorf(t, errs[rank], "rank %d", rank)
		require.Equalf(t, rootData, got[rank], "rank %d", rank)
	}
}

func TestReduceSumAtRoot(t *testing.T) {
	const size = 4
	const root = 0
	const count = 4

	errs := make([]error, size)
	recvAtRoot := make([]byte, count)

	runAll(size, func(rank int, tr Transport) {
		send := make([]byte, count)
		for i := range send {
			send[i] = byte(rank)
		}
		var recv []byte
		if rank == root {
			recv = recvAtRoot
		}
		errs[rank] = Reduce(tr, send, recv, count, Sum, root, rank, size)
	})

	for rank, err := range errs {
		require.NoErrorf(t, err, "rank %d", rank)
	}
	require.Equal(t, []byte{6, 6, 6, 6}, recvAtRoot) // 0+1+2+3 = 6
}
