// Package mimpi is a miniature message-passing runtime for a fixed
// group of cooperating processes spawned together as one job (see
// cmd/mimpirun). Each process learns its rank and the world size from
// the environment, and its channels to every other rank from
// pre-wired file descriptors; Init discovers both and starts the
// background machinery, Finalize tears it down.
package mimpi

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mracinowski/mimpi/internal/chanfd"
	"github.com/mracinowski/mimpi/internal/collective"
	"github.com/mracinowski/mimpi/internal/metrics"
	"github.com/mracinowski/mimpi/internal/mimpierr"
	"github.com/mracinowski/mimpi/internal/mlog"
	"github.com/mracinowski/mimpi/internal/runtime"
	"github.com/mracinowski/mimpi/internal/wire"
)

// AnyTag is the wildcard tag: a Recv with this tag matches a message
// carrying any tag, and it is the value the deadlock protocol's
// REQUEST/Outbox matching treats as "any" too.
const AnyTag = wire.AnyTag

// Sentinel errors returned by every operation below. Compare with
// errors.Is; do not compare error strings.
var (
	ErrAttemptedSelfOp  = mimpierr.ErrAttemptedSelfOp
	ErrNoSuchRank       = mimpierr.ErrNoSuchRank
	ErrRemoteFinished   = mimpierr.ErrRemoteFinished
	ErrDeadlockDetected = mimpierr.ErrDeadlockDetected
)

// Op selects the elementwise reduction Reduce folds payloads under.
type Op = collective.Op

const (
	Max  = collective.Max
	Min  = collective.Min
	Sum  = collective.Sum
	Prod = collective.Prod
)

var (
	mu    sync.Mutex
	world *runtime.World
	reg   *prometheus.Registry
)

// Init discovers this process's rank, size, and peer channels from the
// environment and starts the runtime. It must be called exactly once
// per process, before any other operation, and matched by exactly one
// Finalize call.
func Init(enableDeadlockDetection bool) error {
	mu.Lock()
	defer mu.Unlock()

	if world != nil {
		return fmt.Errorf("mimpi: Init called twice")
	}

	rank, size, err := readIdentity()
	if err != nil {
		return err
	}

	links, err := openPeerLinks(rank, size)
	if err != nil {
		return err
	}

	reg = prometheus.NewRegistry()
	mc := metrics.NewCollectors(reg)

	world = runtime.New(rank, size, enableDeadlockDetection, links, mc)
	mlog.Named("mimpi").Debugw("initialized", "rank", rank, "size", size, "deadlock_detection", enableDeadlockDetection)
	return nil
}

// Finalize sends close frames to every peer, joins every receiver, and
// releases runtime state. Safe to call regardless of prior errors.
func Finalize() {
	mu.Lock()
	defer mu.Unlock()

	if world == nil {
		return
	}
	world.Finalize()
	world = nil
	reg = nil
}

// Registry exposes the Prometheus registry this process's counters are
// registered against, for callers that want to mount it on an HTTP
// handler. Returns nil before Init or after Finalize.
func Registry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return reg
}

// WorldSize returns the number of ranks in the job.
func WorldSize() int {
	mu.Lock()
	defer mu.Unlock()
	if world == nil {
		return 0
	}
	return world.Size()
}

// WorldRank returns this process's rank.
func WorldRank() int {
	mu.Lock()
	defer mu.Unlock()
	if world == nil {
		return 0
	}
	return world.Rank()
}

func currentWorld() *runtime.World {
	mu.Lock()
	defer mu.Unlock()
	return world
}

func readIdentity() (rank, size int, err error) {
	rank, err = readEnvInt("MIMPI_RANK")
	if err != nil {
		return 0, 0, err
	}
	size, err = readEnvInt("MIMPI_SIZE")
	if err != nil {
		return 0, 0, err
	}
	return rank, size, nil
}

func readEnvInt(name string) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, fmt.Errorf("mimpi: %s not set (run under mimpirun)", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("mimpi: %s=%q is not an integer: %w", name, raw, err)
	}
	return v, nil
}

// openPeerLinks wraps the fixed file descriptors the launcher placed in
// this process's ExtraFiles (mimpirun's Go analogue of dup2'ing pipe
// ends into a well-known offset) as *os.File-backed PeerLinks.
func openPeerLinks(rank, size int) ([]runtime.PeerLink, error) {
	links := make([]runtime.PeerLink, size)
	for peer := 0; peer < size; peer++ {
		if peer == rank {
			continue
		}
		readFD := chanfd.ReaderFD(rank, peer, size)
		writeFD := chanfd.WriterFD(rank, peer, size)

		reader := os.NewFile(uintptr(readFD), fmt.Sprintf("mimpi-reader-%d", peer))
		writer := os.NewFile(uintptr(writeFD), fmt.Sprintf("mimpi-writer-%d", peer))
		if reader == nil || writer == nil {
			return nil, fmt.Errorf("mimpi: peer %d channel descriptors not inherited", peer)
		}
		links[peer] = runtime.PeerLink{Reader: reader, Writer: writer}
	}
	return links, nil
}
