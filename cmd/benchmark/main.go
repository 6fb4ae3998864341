package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/storeparty/store"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	widthsKey  = "widths"
	heightsKey = "heights"
	itersKey   = "iters"
	profileKey = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through chains of derived stores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  widthsKey,
				Usage: "Comma separated number of independent chains",
				Value: "1,10,100,1000",
			},
			&cli.StringFlag{
				Name:  heightsKey,
				Usage: "Comma separated number of derived stores per chain",
				Value: "1,10,100,1000",
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Number of source updates per size",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	ww, err := parseSizes(cmd.String(widthsKey))
	if err != nil {
		return fmt.Errorf("--%s: %w", widthsKey, err)
	}
	hh, err := parseSizes(cmd.String(heightsKey))
	if err != nil {
		return fmt.Errorf("--%s: %w", heightsKey, err)
	}
	iters := int(cmd.Uint(itersKey))

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	if _, err := benchmarkStores(ww, hh, iters); err != nil {
		return err
	}

	tbl, err := benchmarkStores(ww, hh, iters)
	if err != nil {
		return err
	}
	tbl.Render()
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("size must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes in %q", s)
	}
	return sizes, nil
}

func addOne(v int) (int, error) {
	return v + 1, nil
}

func increment(v int) int {
	return v + 1
}

type propagation struct {
	src    *store.Store[int]
	digest *xxhash.Digest
	unsubs []store.Unsubscriber
}

// buildPropagation wires w chains of h derived stores onto one source. Every
// chain end is subscribed and hashes what it receives.
func buildPropagation(w, h int) (*propagation, error) {
	d := store.NewDispatcher()
	p := &propagation{
		src:    store.NewWritable(d, 1, nil, store.WithName("src")),
		digest: xxhash.New(),
	}

	var buf [8]byte
	for i := 0; i < w; i++ {
		var last store.Readable[int] = p.src
		for j := 0; j < h; j++ {
			next, err := store.Derive(d, last, addOne, 0)
			if err != nil {
				p.stop()
				return nil, err
			}
			last = next
		}

		p.unsubs = append(p.unsubs, last.Subscribe(func(v int) {
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			p.digest.Write(buf[:])
		}, nil))
	}
	return p, nil
}

func (p *propagation) stop() {
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

func benchmarkStores(ww, hh []int, iters int) (table.Writer, error) {
	tbl := table.NewWriter()
	tbl.SetTitle("Store Derivations")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "checksum"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			p, err := buildPropagation(w, h)
			if err != nil {
				return nil, err
			}
			for i := 0; i < iters; i++ {
				start := time.Now()
				p.src.Update(increment)
				tach.AddTime(time.Since(start))
			}
			p.stop()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					fmt.Sprintf("%016x", p.digest.Sum64()),
				},
			})
		}
	}

	return tbl, nil
}
