package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/storeparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	maxArityKey = "count"
	outKey      = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed multi-source derivations for the store package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxArityKey,
				Usage: "Highest number of sources to generate a DeriveN for",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "File to write the generated code to",
				Value: "store/derive_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for store derivations started")
	defer func() {
		log.Printf("Codegen for store derivations finished in %v", time.Since(start))
	}()

	maxArity := int(cmd.Uint(maxArityKey))
	if maxArity < 2 {
		return fmt.Errorf("--%s must be at least 2, got %d", maxArityKey, maxArity)
	}
	out := cmd.String(outKey)
	log.Printf("Generating Derive2..Derive%d into %s", maxArity, out)

	src, err := format.Source([]byte(templates.DeriveGen(maxArity)))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		return err
	}

	return nil
}
