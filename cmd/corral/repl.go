package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"corral/builtins"
	"corral/parser"
	"corral/trace"
	"corral/vm"
)

const (
	historyFile = ".corral_history"
	prompt      = "corral> "
)

const banner = "corral interactive session\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

const helpText = `
Session commands:
  :quit        Exit the session
  :help        Show this help
  :registers   Dump the register file
  :stack       Dump the operand stack
  :heap        Dump the heap
  :builtins    List callable builtins
  :reset       Start over with fresh memory

Anything else is assembled as one instruction and executed against the
session's memory. Labels and jumps need a full program; use -f for
those. Builtin calls (call __println and friends) work here.
`

func runRepl() {
	fmt.Println(banner)

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	machine := vm.NewVM(builtins.NewRegistry())

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if done := command(machine, line); done {
				return
			}
			continue
		}

		eval(machine, line)
	}
}

// command handles one :meta line; it reports whether to exit
func command(machine *vm.VM, line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":registers":
		fmt.Print(machine.Mem.Registers.Dump())
	case ":stack":
		for i, v := range machine.Mem.Stack.Values() {
			fmt.Printf("%d\t: %s\n", i, v)
		}
	case ":heap":
		fmt.Print(machine.Mem.Heap.Dump())
	case ":builtins":
		for _, name := range machine.Builtins.Names() {
			fmt.Println(name)
		}
	case ":reset":
		fresh := vm.NewVM(machine.Builtins)
		*machine = *fresh
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %s (try :help)\n", line)
	}
	return false
}

// eval assembles one line and runs it against the session's memory
func eval(machine *vm.VM, line string) {
	prog, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(prog.Instructions) == 0 {
		fmt.Fprintln(os.Stderr, "Error: labels need a full program; use -f")
		return
	}
	if fault := machine.Run(prog); fault != nil {
		trace.Render(os.Stderr, fault)
	}
}
