// Package bench times the associative operations of both tree engines over
// growing datasets and writes the measurements as CSV, one file per
// operation, for the plot script to pick up.
package bench

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"treedict/pkg/bptree"
	"treedict/pkg/btree"
	"treedict/pkg/dict"
	"treedict/pkg/errs"
	"treedict/pkg/util"
)

// Kind names a tree engine; it doubles as the results directory name.
type Kind string

const (
	BTreeKind     Kind = "btree"
	BPlusTreeKind Kind = "bplustree"
)

const (
	steps      = 10
	maxQueries = 100_000
)

// Runner drives the three measurement passes for one engine kind.
type Runner struct {
	kind   Kind
	degree int
	outDir string
	rng    *rand.Rand
}

func NewRunner(kind Kind, degree int, outDir string, seed int64) (*Runner, error) {
	if kind != BTreeKind && kind != BPlusTreeKind {
		return nil, fmt.Errorf("%w: unknown tree kind %q", errs.ErrInvalidInput, kind)
	}
	dir := filepath.Join(outDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Runner{
		kind:   kind,
		degree: degree,
		outDir: dir,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// LaunchInsertions measures inserting n shuffled keys into a fresh tree for
// each of the ten size steps.
func (r *Runner) LaunchInsertions(count int) error {
	data := r.uniqueSet(count)
	rows := make([][2]int64, 0, steps)

	for i := 1; i <= steps; i++ {
		set := r.newSet()
		n := count * i / steps

		start := time.Now()
		for j := 0; j < n; j++ {
			util.PanicIfErr(set.Add(data[j]))
		}
		elapsed := time.Since(start)

		rows = append(rows, [2]int64{int64(n), elapsed.Microseconds()})
	}
	return r.writeCSV("insert.csv", rows)
}

// LaunchLookups measures membership queries against populated trees.
func (r *Runner) LaunchLookups(count int) error {
	data := r.uniqueSet(count)
	rows := make([][2]int64, 0, steps)

	for i := 1; i <= steps; i++ {
		set := r.newSet()
		n := count * i / steps
		for j := 0; j < n; j++ {
			util.PanicIfErr(set.Add(data[j]))
		}
		queries := r.queries(n)

		acc := 0
		start := time.Now()
		for _, q := range queries {
			if set.Contains(data[q]) {
				acc++
			}
		}
		elapsed := time.Since(start)
		if acc != len(queries) {
			return fmt.Errorf("lookup miss: %d of %d", len(queries)-acc, len(queries))
		}

		rows = append(rows, [2]int64{int64(n), elapsed.Microseconds()})
	}
	return r.writeCSV("lookup.csv", rows)
}

// LaunchRemovals measures removals of random keys from populated trees.
func (r *Runner) LaunchRemovals(count int) error {
	data := r.uniqueSet(count)
	rows := make([][2]int64, 0, steps)

	for i := 1; i <= steps; i++ {
		set := r.newSet()
		n := count * i / steps
		for j := 0; j < n; j++ {
			util.PanicIfErr(set.Add(data[j]))
		}
		queries := r.queries(n)

		start := time.Now()
		for _, q := range queries {
			set.Remove(data[q])
		}
		elapsed := time.Since(start)

		rows = append(rows, [2]int64{int64(n), elapsed.Microseconds()})
	}
	return r.writeCSV("remove.csv", rows)
}

// Plot shells out to the python plotter over the results directory.
func Plot(script, resultsDir string) error {
	cmd := exec.Command("python3", script, resultsDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("python plotter call failed: %w", err)
	}
	return nil
}

func (r *Runner) newSet() *dict.Set[util.Uint64] {
	if r.kind == BTreeKind {
		return dict.NewBTreeSet[util.Uint64](&btree.Options{Degree: r.degree})
	}
	return dict.NewBPlusTreeSet[util.Uint64](&bptree.Options{Degree: r.degree})
}

// uniqueSet returns the keys 0..count-1 in shuffled order.
func (r *Runner) uniqueSet(count int) []util.Uint64 {
	data := make([]util.Uint64, count)
	for i, v := range r.rng.Perm(count) {
		data[i] = util.Uint64(v)
	}
	return data
}

// queries returns up to maxQueries uniformly random indexes below n.
func (r *Runner) queries(n int) []int {
	queryCount := n
	if queryCount > maxQueries {
		queryCount = maxQueries
	}
	queries := make([]int, queryCount)
	for i := range queries {
		queries[i] = r.rng.Intn(n)
	}
	return queries
}

func (r *Runner) writeCSV(name string, rows [][2]int64) error {
	f, err := os.Create(filepath.Join(r.outDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "count,time_us"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(f, "%d,%d\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}
