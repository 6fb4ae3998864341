package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	scenariosKey = "scenarios"
	repeatsKey   = "repeats"
	onlyKey      = "only"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered derivation graphs and report update rates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  scenariosKey,
				Usage: "YAML file with scenarios, the built in set is used when empty",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per scenario, the best one is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  onlyKey,
				Usage: "Only run scenarios whose name contains this",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting store graph benchmark, please wait...")
	defer log.Print("Finished store graph benchmark")

	scenarios, err := loadScenarios(cmd.String(scenariosKey))
	if err != nil {
		return err
	}
	testRepeats := int(cmd.Uint(repeatsKey))
	if testRepeats < 1 {
		return fmt.Errorf("--%s must be at least 1", repeatsKey)
	}
	only := cmd.String(onlyKey)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "sum", "updateRate", "title",
	})

	for _, cfg := range scenarios {
		if only != "" && !strings.Contains(cfg.Name, only) {
			continue
		}
		log.Printf("Running '%s' config", cfg.Name)
		best, err := runScenario(cfg, testRepeats)
		if err != nil {
			return err
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.Width, cfg.Layers),
			fmt.Sprint(cfg.Sources),
			fmt.Sprint(cfg.ReadFraction),
			fmt.Sprint(cfg.StaticFraction),
			humanize.Comma(cfg.Iterations),
			cfg.Name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(best.sum)),
			humanize.Comma(int64(updateRate)),
			title(cfg),
		})
	}
	table.Render()
	return nil
}

func runScenario(cfg scenario, testRepeats int) (*results, error) {
	counter := new(int64)
	graph, err := makeGraph(cfg, counter)
	if err != nil {
		return nil, err
	}

	// warm up
	runGraph(graph, cfg)

	best := &results{duration: time.Hour}
	for i := 0; i < testRepeats; i++ {
		log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.Name, i+1, testRepeats, (i+1)*100/testRepeats)
		*counter = 0
		start := time.Now()
		sum := runGraph(graph, cfg)
		duration := time.Since(start)

		if duration < best.duration {
			best.duration = duration
			best.sum = sum
			best.count = *counter
		}
	}
	return best, nil
}

func title(cfg scenario) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.Width, cfg.Layers, cfg.Sources))
	if cfg.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.ReadFraction))
	}
	return sb.String()
}
