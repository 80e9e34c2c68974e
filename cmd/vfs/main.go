package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-faker/faker/v4"

	"treedict/pkg/vfs"
)

var (
	engine     = flag.String("engine", "btree", "dictionary engine backing the filesystem: btree or bplustree")
	degree     = flag.Int("degree", 0, "tree degree; 0 uses the engine default")
	cacheSize  = flag.Int("cache", 128, "resolve cache capacity; 0 disables caching")
	shouldSeed = flag.Bool("seed", false, "populate the filesystem with faker-generated entries on startup")
	numRecords = flag.Int("records", 100, "amount of files to seed the filesystem with; a tenth as many directories are added")
)

func main() {
	flag.Usage = func() {
		fmt.Println("\nVFS Shell\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := &vfs.Options{Degree: *degree, CacheSize: *cacheSize}
	switch *engine {
	case "btree":
		opts.Engine = vfs.BTreeEngine
	case "bplustree":
		opts.Engine = vfs.BPlusTreeEngine
	default:
		log.Fatalf("unknown engine %q", *engine)
	}

	v, err := vfs.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	if *shouldSeed {
		seed(v, *numRecords)
	}

	console := vfs.NewConsole(v, os.Stdout)
	fmt.Println("Virtual File System Console")
	fmt.Println("Type 'help' for available commands")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		console.ShowPrompt()
		if !scanner.Scan() {
			return
		}
		if err := console.Execute(scanner.Text()); err != nil {
			if errors.Is(err, vfs.ErrExit) {
				return
			}
			console.ShowError(err)
		}
	}
}

// seed fills the filesystem with records/10 fake top-level directories and
// records fake files spread over the root and those directories. Name
// collisions are simply skipped.
func seed(v *vfs.VFS, records int) {
	dirs := []string{"/"}
	for i := 0; i < records/10; i++ {
		name := "/" + faker.Word()
		if err := v.Mkdir(name); err == nil {
			dirs = append(dirs, name)
		}
	}
	for i := 0; i < records; i++ {
		dir := dirs[i%len(dirs)]
		path := dir + "/" + faker.Word() + faker.Word() + ".txt"
		if err := v.Touch(path); err != nil {
			continue
		}
	}
}
