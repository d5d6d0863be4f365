package vm

import (
	"corral/types"
	"fmt"
	"math"
)

// numeric pulls an arithmetic operand apart. ok is false for
// non-numeric kinds.
func numeric(v types.Value) (f float64, isFloat bool, i int64, ok bool) {
	switch v := v.(type) {
	case types.IntValue:
		return float64(v.Val), false, v.Val, true
	case types.FloatValue:
		return v.Val, true, 0, true
	default:
		return 0, false, 0, false
	}
}

// arith applies a binary arithmetic opcode. Integer operands stay
// integers; a float on either side promotes the whole operation to
// float. Both operands are validated before anything is computed, so a
// fault never leaves a half-written result behind.
func arith(op OpCode, a, b types.Value) types.Result {
	fa, aFloat, ia, ok := numeric(a)
	if !ok {
		return types.Errf(types.F_TYPE_MISMATCH,
			fmt.Sprintf("%s requires numeric operands, got %s", op, a.Type()))
	}
	fb, bFloat, ib, ok := numeric(b)
	if !ok {
		return types.Errf(types.F_TYPE_MISMATCH,
			fmt.Sprintf("%s requires numeric operands, got %s", op, b.Type()))
	}

	if op == OP_XOR {
		if aFloat || bFloat {
			return types.Errf(types.F_TYPE_MISMATCH, "xor requires Integer operands")
		}
		return types.Ok(types.NewInt(ia ^ ib))
	}

	if aFloat || bFloat {
		switch op {
		case OP_ADD:
			return types.Ok(types.NewFloat(fa + fb))
		case OP_SUB:
			return types.Ok(types.NewFloat(fa - fb))
		case OP_MUL:
			return types.Ok(types.NewFloat(fa * fb))
		case OP_DIV:
			if fb == 0 {
				return types.Err(types.F_DIVISION_BY_ZERO)
			}
			return types.Ok(types.NewFloat(fa / fb))
		case OP_MOD:
			if fb == 0 {
				return types.Err(types.F_DIVISION_BY_ZERO)
			}
			return types.Ok(types.NewFloat(math.Mod(fa, fb)))
		}
	}

	switch op {
	case OP_ADD:
		return types.Ok(types.NewInt(ia + ib))
	case OP_SUB:
		return types.Ok(types.NewInt(ia - ib))
	case OP_MUL:
		return types.Ok(types.NewInt(ia * ib))
	case OP_DIV:
		if ib == 0 {
			return types.Err(types.F_DIVISION_BY_ZERO)
		}
		return types.Ok(types.NewInt(ia / ib))
	case OP_MOD:
		if ib == 0 {
			return types.Err(types.F_DIVISION_BY_ZERO)
		}
		return types.Ok(types.NewInt(ia % ib))
	}

	return types.Errf(types.F_TYPE_MISMATCH, fmt.Sprintf("%s is not arithmetic", op))
}

// compare orders two values for test/assert. Numbers compare with
// promotion, text compares byte-lexicographically, Empty equals only
// Empty, handles equal only when they name the same block and are
// never ordered. Any other pairing cannot be ordered and faults.
func compare(a, b types.Value) (equal, less, greater bool, res types.Result) {
	fa, _, _, aNum := numeric(a)
	fb, _, _, bNum := numeric(b)
	if aNum && bNum {
		return fa == fb, fa < fb, fa > fb, types.Ok(types.Empty)
	}

	if sa, ok := a.(types.StrValue); ok {
		if sb, ok := b.(types.StrValue); ok {
			return sa.Value() == sb.Value(), sa.Value() < sb.Value(), sa.Value() > sb.Value(), types.Ok(types.Empty)
		}
	}

	if _, ok := a.(types.EmptyValue); ok {
		if _, ok := b.(types.EmptyValue); ok {
			return true, false, false, types.Ok(types.Empty)
		}
	}

	if ha, ok := a.(types.HandleValue); ok {
		if hb, ok := b.(types.HandleValue); ok {
			return ha.Equal(hb), false, false, types.Ok(types.Empty)
		}
	}

	return false, false, false, types.Errf(types.F_TYPE_MISMATCH,
		fmt.Sprintf("cannot order %s against %s", a.Type(), b.Type()))
}
