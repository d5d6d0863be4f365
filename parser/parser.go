// Package parser assembles textual programs into vm.Program values.
//
// The source format is line oriented. A `section .code` or
// `section .data` directive switches the current section; `;` starts a
// comment; `_name:` on its own line binds a label in the code section;
// `_name <literal>` in the data section binds a data symbol.
// Instructions are an opcode mnemonic followed by comma-separated
// operands.
package parser

import (
	"corral/vm"
	"fmt"
	"strings"
)

// ParseError reports a malformed source line
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser assembles one source text into a program
type Parser struct {
	prog    *vm.Program
	section string
	line    int
}

// Parse assembles source text into a runnable program. Label and data
// references are recorded by name; the engine binds them when a jump,
// call, or mov actually uses them.
func Parse(src string) (*vm.Program, error) {
	p := &Parser{prog: vm.NewProgram(), section: "code"}
	for _, raw := range strings.Split(src, "\n") {
		p.line++
		if err := p.parseLine(raw); err != nil {
			return nil, err
		}
	}
	return p.prog, nil
}

func (p *Parser) errf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseLine(raw string) error {
	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil
	}

	if after, ok := strings.CutPrefix(line, "section ."); ok {
		name := strings.TrimSpace(after)
		if name != "code" && name != "data" {
			return p.errf("unknown section '.%s'", name)
		}
		p.section = name
		return nil
	}

	if p.section == "data" {
		return p.parseData(line)
	}

	if name, ok := strings.CutSuffix(line, ":"); ok && strings.HasPrefix(name, "_") {
		if strings.ContainsAny(name, " \t") {
			return p.errf("malformed label '%s'", line)
		}
		if _, dup := p.prog.Labels[name]; dup {
			return p.errf("label '%s' already defined", name)
		}
		p.prog.Labels[name] = len(p.prog.Instructions)
		return nil
	}

	return p.parseInstruction(line)
}

// parseData handles one `_name <literal>` binding
func (p *Parser) parseData(line string) error {
	if !strings.HasPrefix(line, "_") {
		return p.errf("data symbol must start with '_': %s", line)
	}
	name, rest, found := strings.Cut(line, " ")
	if !found {
		return p.errf("data symbol '%s' has no value", line)
	}
	name = strings.TrimSuffix(name, ":")
	val, err := p.parseLiteral(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	if _, dup := p.prog.Data[name]; dup {
		return p.errf("data symbol '%s' already defined", name)
	}
	p.prog.Data[name] = val
	return nil
}

func (p *Parser) parseInstruction(line string) error {
	mnemonic, rest, _ := strings.Cut(line, " ")
	op, ok := vm.LookupOpcode(mnemonic)
	if !ok {
		return p.errf("unknown opcode '%s'", mnemonic)
	}

	var operands []vm.Operand
	for _, field := range splitOperands(rest) {
		o, err := p.parseOperand(field)
		if err != nil {
			return err
		}
		operands = append(operands, o)
	}
	p.prog.Instructions = append(p.prog.Instructions, vm.Ins(op, operands...))
	return nil
}

// stripComment drops everything from the first ';' outside quotes
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return line[:i]
		}
	}
	return line
}

// splitOperands splits an operand list on commas outside quotes
func splitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var fields []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			fields = append(fields, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	fields = append(fields, strings.TrimSpace(s[start:]))
	return fields
}
