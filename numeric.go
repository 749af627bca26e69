package streamjson

import "strconv"

// numberShape records, for a syntactically valid JSON number literal, which
// of the narrowing numeric containers (spec.md §3's "numeric narrowing
// order": INT32 ⊂ UINT32 ⊂ INT64 ⊂ UINT64 ⊂ DOUBLE) it fits exactly.
// A literal containing '.', 'e', or 'E' never fits an integer width.
type numberShape struct {
	fitsInt32  bool
	fitsUint32 bool
	fitsInt64  bool
	fitsUint64 bool
	isFloat    bool
}

// tag returns the narrowest container that exactly represents the literal
// this shape was computed from.
func (s numberShape) tag() Tag {
	switch {
	case s.isFloat:
		return TagDouble
	case s.fitsInt32:
		return TagInt32
	case s.fitsUint32:
		return TagUint32
	case s.fitsInt64:
		return TagInt64
	case s.fitsUint64:
		return TagUint64
	default:
		return TagDouble
	}
}

// classifyNumber implements C1. lit is the exact byte run accepted by the
// lexer's number grammar: -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?.
func classifyNumber(lit []byte) numberShape {
	var shape numberShape

	for _, c := range lit {
		if c == '.' || c == 'e' || c == 'E' {
			shape.isFloat = true
			break
		}
	}
	if shape.isFloat {
		return shape
	}

	neg := len(lit) > 0 && lit[0] == '-'
	digits := lit
	if neg {
		digits = lit[1:]
	}

	// Each width is checked independently so that a narrower width
	// overflowing never aborts classification of a wider one.
	if !neg {
		shape.fitsUint32 = fitsUnsigned(digits, 32)
		shape.fitsUint64 = fitsUnsigned(digits, 64)
	}
	shape.fitsInt32 = fitsSigned(digits, neg, 32)
	shape.fitsInt64 = fitsSigned(digits, neg, 64)

	return shape
}

func fitsUnsigned(digits []byte, bits int) bool {
	if len(digits) == 0 {
		return false
	}
	_, err := strconv.ParseUint(string(digits), 10, bits)
	return err == nil
}

func fitsSigned(digits []byte, neg bool, bits int) bool {
	if len(digits) == 0 {
		return false
	}
	s := string(digits)
	if neg {
		s = "-" + s
	}
	_, err := strconv.ParseInt(s, 10, bits)
	return err == nil
}

func numberToInt32(lit []byte) int32 {
	v, _ := strconv.ParseInt(string(lit), 10, 32)
	return int32(v)
}

func numberToUint32(lit []byte) uint32 {
	v, _ := strconv.ParseUint(string(lit), 10, 32)
	return uint32(v)
}

func numberToInt64(lit []byte) int64 {
	v, _ := strconv.ParseInt(string(lit), 10, 64)
	return v
}

func numberToUint64(lit []byte) uint64 {
	v, _ := strconv.ParseUint(string(lit), 10, 64)
	return v
}

// numberToDouble converts lit to the nearest representable float64.
// strconv.ParseFloat already performs correctly-rounded decimal-to-binary
// conversion, so long literals round-trip faithfully per spec.md §4.1.
func numberToDouble(lit []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(lit), 64)
	if err != nil {
		// Out-of-range literals (e.g. 1e999) saturate to +/-Inf per
		// strconv, which ParseFloat reports via ErrRange but still
		// returns the saturated value; that is an acceptable double
		// per spec.md's numeric model, so swallow ErrRange.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}
