// Command analyze runs the association pipeline over a local xlsx or csv
// file and prints the markdown report, without the HTTP layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"goassoc/adapters/heuristic"
	"goassoc/adapters/preprocess"
	"goassoc/adapters/tabular"
	"goassoc/internal/pipeline"
	"goassoc/internal/registry"
	"goassoc/internal/report"
)

func main() {
	file := flag.String("file", "", "path to an .xlsx or .csv file")
	columns := flag.String("columns", "", "comma-separated column selection (default: all columns)")
	batchSize := flag.Int("batch-size", 20, "association tests per batch")
	workers := flag.Int("workers", 0, "worker pool size (default: available parallelism)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ds, err := tabular.NewReader(*file).Read()
	if err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	selection := ds.Names()
	if *columns != "" {
		selection = strings.Split(*columns, ",")
	}

	reg := registry.New()
	orch := pipeline.New(reg, preprocess.NewImputer(),
		heuristic.NewMajorityClass("logistic regression"),
		heuristic.NewOneRule("decision tree"),
		heuristic.NewJointMajority("random forest"),
		pipeline.Options{BatchSize: *batchSize, Workers: *workers})

	id := reg.Create()
	orch.Run(context.Background(), id, ds, selection)

	rec, ok := reg.Get(id)
	if !ok {
		log.Fatal("task record disappeared")
	}
	fmt.Print(report.Markdown(rec))
	if rec.Message != "" {
		os.Exit(1)
	}
}
