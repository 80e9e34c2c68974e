package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"treedict/pkg/bench"
	"treedict/pkg/util"
)

var (
	tree       = flag.String("tree", "both", "tree kind to benchmark: btree, bplustree or both")
	degree     = flag.Int("degree", 32, "tree degree")
	count      = flag.Int("count", 1_000_000, "amount of keys at the largest size step")
	outDir     = flag.String("out", "results", "directory to write CSV results into")
	seed       = flag.Int64("seed", 42, "rng seed for datasets and queries")
	shouldPlot = flag.Bool("plot", false, "run the python plotter after measuring")
	plotScript = flag.String("script", "scripts/plot_results.py", "path to the plot script")
)

func main() {
	flag.Usage = func() {
		fmt.Println("\nTree Benchmark\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	var kinds []bench.Kind
	switch *tree {
	case "btree":
		kinds = []bench.Kind{bench.BTreeKind}
	case "bplustree":
		kinds = []bench.Kind{bench.BPlusTreeKind}
	case "both":
		kinds = []bench.Kind{bench.BTreeKind, bench.BPlusTreeKind}
	default:
		log.Fatalf("unknown tree kind %q", *tree)
	}

	stop := util.SetInterval(func(start, now time.Time) {
		fmt.Printf("running for %ds\n", int(now.Sub(start).Seconds()))
	}, 10*time.Second)
	defer stop()

	for _, kind := range kinds {
		runner, err := bench.NewRunner(kind, *degree, *outDir, *seed)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s: inserts\n", kind)
		if err := runner.LaunchInsertions(*count); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: lookups\n", kind)
		if err := runner.LaunchLookups(*count); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: removals\n", kind)
		if err := runner.LaunchRemovals(*count); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldPlot {
		if err := bench.Plot(*plotScript, *outDir); err != nil {
			log.Fatal(err)
		}
	}
}
