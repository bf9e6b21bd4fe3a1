// Package stream runs per-line transforms over stdin-sized inputs with a
// worker pool while keeping output in input order. The first failed line
// cancels the whole run, matching the fail-fast behavior of the CLI.
package stream

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// MapFunc turns one input line into zero or more output lines.
type MapFunc func(line string) ([]string, error)

type result struct {
	lines []string
	err   error
}

type job struct {
	line string
	out  chan result
}

// MapOrdered feeds every line of r through fn on a pool of workers and writes
// the produced lines to w in input order. workers <= 0 means one per CPU.
func MapOrdered(ctx context.Context, r io.Reader, w io.Writer, workers int, fn MapFunc) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	depth := workers * 4

	g, ctx := errgroup.WithContext(ctx)

	in := make(chan job, depth)
	sequence := make(chan job, depth)

	g.Go(func() error {
		defer close(in)
		defer close(sequence)

		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				j := job{line: strings.TrimRight(line, "\r\n"), out: make(chan result, 1)}
				select {
				case in <- j:
				case <-ctx.Done():
					return nil
				}
				select {
				case sequence <- j:
				case <-ctx.Done():
					return nil
				}
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range in {
				lines, err := fn(j.line)
				j.out <- result{lines: lines, err: err}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		bw := bufio.NewWriter(w)
		defer bw.Flush()

		for j := range sequence {
			res := <-j.out
			if res.err != nil {
				return res.err
			}
			for _, line := range res.lines {
				if _, err := bw.WriteString(line); err != nil {
					return err
				}
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
		}
		return bw.Flush()
	})

	return g.Wait()
}

// Each reads r line by line, calling fn sequentially. Used by aggregating
// commands that cannot stream.
func Each(ctx context.Context, r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := br.ReadString('\n')
		if line != "" {
			if ferr := fn(strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
