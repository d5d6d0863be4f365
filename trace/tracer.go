package trace

import (
	"corral/vm"
	"fmt"
	"io"
	"strings"
)

// Render writes the fault report for a run: a header naming the fault
// and where it happened, the executed-instruction listing with the
// faulting line marked, and the operand stack as it stood. It only
// reads the snapshot the fault already carries.
func Render(w io.Writer, f *vm.Fault) {
	fmt.Fprintf(w, "Error: %s\n", f.Error())
	fmt.Fprintln(w, "===== Stack Trace =====")
	for i, entry := range f.Executed {
		line := entry.Text
		if i == len(f.Executed)-1 {
			line += " <-- error occurred here"
		}
		fmt.Fprintf(w, "%d\t| %s\n", entry.Index, line)
	}
	fmt.Fprintln(w, "===== App Stack =====")
	for i, v := range f.AppStack {
		fmt.Fprintf(w, "%d\t: %s\n", i, v)
	}
}

// String renders the fault report to a string
func String(f *vm.Fault) string {
	var b strings.Builder
	Render(&b, f)
	return b.String()
}
