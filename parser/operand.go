package parser

import (
	"corral/mem"
	"corral/types"
	"corral/vm"
	"strconv"
	"strings"
)

func (p *Parser) parseOperand(field string) (vm.Operand, error) {
	if field == "" {
		return vm.Operand{}, p.errf("empty operand")
	}

	if r, ok := mem.ParseRegister(field); ok {
		return vm.RegOperand(r), nil
	}

	if open := strings.IndexByte(field, '['); open >= 0 {
		return p.parseIndexed(field, open)
	}

	if strings.HasPrefix(field, "_") {
		return vm.SymOperand(field), nil
	}

	val, err := p.parseLiteral(field)
	if err != nil {
		return vm.Operand{}, err
	}
	return vm.ImmOperand(val), nil
}

// parseIndexed handles reg[offset-expression] operands
func (p *Parser) parseIndexed(field string, open int) (vm.Operand, error) {
	if !strings.HasSuffix(field, "]") {
		return vm.Operand{}, p.errf("unterminated offset in '%s'", field)
	}
	reg, ok := mem.ParseRegister(field[:open])
	if !ok {
		return vm.Operand{}, p.errf("'%s' is not a register", field[:open])
	}

	expr := field[open+1 : len(field)-1]
	terms, err := p.parseOffsets(expr)
	if err != nil {
		return vm.Operand{}, err
	}
	return vm.IndexedOperand(reg, terms...), nil
}

// parseOffsets scans `rb*2+1` style expressions into terms. Each term
// is a register or an integer literal; the operator recorded on a term
// joins it to the term after it.
func (p *Parser) parseOffsets(expr string) ([]vm.OffsetTerm, error) {
	var terms []vm.OffsetTerm
	rest := strings.TrimSpace(expr)
	if rest == "" {
		return nil, p.errf("empty offset expression")
	}

	for rest != "" {
		cut := strings.IndexAny(rest, "+-*/%")
		raw, op := rest, byte(0)
		if cut >= 0 {
			raw, op = rest[:cut], rest[cut]
			rest = strings.TrimSpace(rest[cut+1:])
			if rest == "" {
				return nil, p.errf("offset expression ends with '%c'", op)
			}
		} else {
			rest = ""
		}

		raw = strings.TrimSpace(raw)
		term := vm.OffsetTerm{Op: op}
		if r, ok := mem.ParseRegister(raw); ok {
			term.Reg = r
			term.IsReg = true
		} else {
			lit, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, p.errf("'%s' is not a register or integer offset", raw)
			}
			term.Lit = lit
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// parseLiteral turns a source token into a value. Quoted text becomes
// Text, 0x-prefixed and plain digits become Integers, a decimal point
// makes a Float, and a single bare character reads as 1-char Text.
func (p *Parser) parseLiteral(s string) (types.Value, error) {
	if len(s) >= 2 {
		if first, last := s[0], s[len(s)-1]; (first == '\'' || first == '"') && last == first {
			return types.NewStr(s[1 : len(s)-1]), nil
		}
	}

	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		if i, err := strconv.ParseInt(hex, 16, 64); err == nil {
			return types.NewInt(i), nil
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return types.NewInt(i), nil
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return types.NewFloat(f), nil
		}
	}
	if len(s) == 1 {
		return types.NewStr(s), nil
	}
	return nil, p.errf("cannot parse '%s' as a value", s)
}
