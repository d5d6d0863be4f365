package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"corral/builtins"
	"corral/manifest"
	"corral/parser"
	"corral/trace"
	"corral/vm"
)

func main() {
	file := flag.String("f", "", "Assemble and run a source file")
	inline := flag.String("e", "", "Assemble and run inline source")
	projectDir := flag.String("project", "", "Run the project described by <dir>/corral.toml")
	stepLimit := flag.Int64("step-limit", 0, "Fault after this many steps (0 = unbounded)")
	seed := flag.Int64("seed", 0, "Fix the pseudo-random seed (0 = seed from the clock)")
	repl := flag.Bool("repl", false, "Start an interactive session")

	flag.Parse()

	switch {
	case *repl:
		runRepl()
	case *inline != "":
		os.Exit(runSource(*inline, *stepLimit, *seed))
	case *file != "":
		src, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		os.Exit(runSource(string(src), *stepLimit, *seed))
	case *projectDir != "":
		os.Exit(runProject(*projectDir))
	default:
		// with no flags, a corral.toml in the cwd wins, else repl
		if _, err := os.Stat(manifest.FileName); err == nil {
			os.Exit(runProject("."))
			return
		}
		runRepl()
	}
}

func runProject(dir string) int {
	m, err := manifest.Load(dir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	src, err := os.ReadFile(m.EntryPath())
	if err != nil {
		log.Fatalf("Failed to read entry %s: %v", m.EntryPath(), err)
	}
	return runSource(string(src), m.Run.StepLimit, m.Run.Seed)
}

func runSource(src string, stepLimit, seed int64) int {
	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	machine := vm.NewVM(builtins.NewRegistry())
	machine.StepLimit = stepLimit
	if seed != 0 {
		machine.Rand = rand.New(rand.NewSource(seed))
	} else {
		machine.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if fault := machine.Run(prog); fault != nil {
		trace.Render(os.Stderr, fault)
		return 1
	}
	return 0
}
