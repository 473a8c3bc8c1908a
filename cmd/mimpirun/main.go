// Command mimpirun is the job launcher: it forks the requested number
// of copies of a program, wires a dedicated pipe between every ordered
// pair of ranks, and publishes MIMPI_RANK/MIMPI_SIZE so each child's
// mimpi.Init call can discover its identity.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mracinowski/mimpi/internal/chanfd"
	"github.com/mracinowski/mimpi/internal/mlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mimpirun:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mimpirun <n> <program> [args...]",
		Short: "Launch n copies of program, wired as one mimpi world.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid process count %q", args[0])
			}
			return run(n, args[1], args[2:])
		},
		SilenceUsage: true,
	}
	return cmd
}

func run(size int, program string, programArgs []string) error {
	log := mlog.Named("mimpirun")

	extraFiles := make([][]*os.File, size)
	for r := range extraFiles {
		extraFiles[r] = make([]*os.File, chanfd.ExtraFilesLen(size))
	}

	var parentEnds []*os.File

	for src := 0; src < size; src++ {
		for dst := 0; dst < size; dst++ {
			if src == dst {
				continue
			}
			r, w, err := os.Pipe()
			if err != nil {
				return fmt.Errorf("mimpirun: open_channel(%d,%d): %w", src, dst, err)
			}
			extraFiles[dst][chanfd.ReaderSlot(dst, src, size)] = r
			extraFiles[src][chanfd.WriterSlot(src, dst, size)] = w
			parentEnds = append(parentEnds, r, w)
		}
	}

	cmds := make([]*exec.Cmd, size)
	for rank := 0; rank < size; rank++ {
		c := exec.Command(program, programArgs...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		c.ExtraFiles = extraFiles[rank]
		c.Env = append(os.Environ(),
			fmt.Sprintf("MIMPI_RANK=%d", rank),
			fmt.Sprintf("MIMPI_SIZE=%d", size),
		)
		cmds[rank] = c
	}

	var g errgroup.Group
	for rank := 0; rank < size; rank++ {
		if err := cmds[rank].Start(); err != nil {
			closeAll(parentEnds)
			return fmt.Errorf("mimpirun: starting rank %d: %w", rank, err)
		}
	}

	// The parent's own copies of every pipe fd were duplicated into the
	// children by exec.Start; closing them here means each channel's
	// refcount drops to exactly the two ranks actually using it, so a
	// child observes EOF when its peer exits instead of when mimpirun does.
	closeAll(parentEnds)

	for rank := 0; rank < size; rank++ {
		rank := rank
		g.Go(func() error {
			if err := cmds[rank].Wait(); err != nil {
				return fmt.Errorf("rank %d: %w", rank, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		log.Errorw("job failed", "error", err)
	}
	return err
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
