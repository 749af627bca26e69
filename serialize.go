package streamjson

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// SerializeMode selects the serializer's layout (spec.md §4.8).
type SerializeMode int

const (
	// SerializePretty emits one member per line, tab-indented, ": " after
	// each key. This is the default, matching json_dom's usual dump mode.
	SerializePretty SerializeMode = iota
	// SerializeMinimize emits no whitespace at all.
	SerializeMinimize
)

// SerializeOptions configures Serialize.
type SerializeOptions struct {
	Mode SerializeMode
	// PreferDictOrder, when true, emits DICT members in insertion order
	// if the dict maintains one, falling back to sorted-by-key order
	// otherwise. When false, members are always emitted sorted by key.
	PreferDictOrder bool
}

// Serialize writes v to w as JSON per opts. It is the write-side mirror of
// the parser: every literal it emits is one the parser would accept back,
// and every number is formatted so it re-parses to the identical VALUE
// variant and value.
func Serialize(w io.Writer, v *Value, opts SerializeOptions) error {
	bw := bufio.NewWriter(w)
	s := &serializer{w: bw, opts: opts}
	if err := s.writeValue(v, 0); err != nil {
		return err
	}
	return bw.Flush()
}

type serializer struct {
	w    *bufio.Writer
	opts SerializeOptions
	err  error
}

func (s *serializer) writeValue(v *Value, depth int) error {
	switch v.Tag() {
	case TagNull:
		s.str("null")
	case TagBool:
		b, _ := v.AsBool()
		if b {
			s.str("true")
		} else {
			s.str("false")
		}
	case TagInt32:
		n, _ := v.AsInt32()
		s.str(strconv.FormatInt(int64(n), 10))
	case TagUint32:
		n, _ := v.AsUint32()
		s.str(strconv.FormatUint(uint64(n), 10))
	case TagInt64:
		n, _ := v.AsInt64()
		s.str(strconv.FormatInt(n, 10))
	case TagUint64:
		n, _ := v.AsUint64()
		s.str(strconv.FormatUint(n, 10))
	case TagDouble:
		f, _ := v.AsDouble()
		// 'g' with -1 precision picks the shortest decimal that
		// round-trips to the same float64 (strconv's shortest-repr
		// algorithm), satisfying the lossless-round-trip requirement.
		// An integral result gets ".0" so it re-parses as DOUBLE rather
		// than an integer tag; infinities are written as out-of-range
		// literals, which the parser saturates back to +/-Inf.
		switch {
		case math.IsInf(f, 1):
			s.str("1e999")
		case math.IsInf(f, -1):
			s.str("-1e999")
		default:
			text := strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(text, ".eE") {
				text += ".0"
			}
			s.str(text)
		}
	case TagString:
		b, _ := v.AsString()
		s.writeQuoted(b)
	case TagArray:
		s.writeArray(v, depth)
	case TagDict:
		s.writeDict(v, depth)
	}
	return s.err
}

func (s *serializer) writeArray(v *Value, depth int) {
	n := v.ArrayLen()
	if n == 0 {
		s.str("[]")
		return
	}
	s.str("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			s.str(",")
		}
		s.newlineIndent(depth + 1)
		s.writeValue(v.ArrayAt(i), depth+1)
	}
	s.newlineIndent(depth)
	s.str("]")
}

func (s *serializer) writeDict(v *Value, depth int) {
	d := v.Dict()
	entries := d.entryOrder(s.opts.PreferDictOrder)
	if len(entries) == 0 {
		s.str("{}")
		return
	}
	s.str("{")
	for i, e := range entries {
		if i > 0 {
			s.str(",")
		}
		s.newlineIndent(depth + 1)
		s.writeQuoted(e.key)
		s.str(":")
		if s.opts.Mode == SerializePretty {
			s.str(" ")
		}
		s.writeValue(e.val, depth+1)
	}
	s.newlineIndent(depth)
	s.str("}")
}

func (s *serializer) newlineIndent(depth int) {
	if s.opts.Mode != SerializePretty {
		return
	}
	s.str("\n")
	for i := 0; i < depth; i++ {
		s.str("\t")
	}
}

func (s *serializer) str(text string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(text)
}

// writeQuoted re-escapes control characters, '"', and '\\'; everything
// else, including valid multi-byte UTF-8, is passed through unchanged.
func (s *serializer) writeQuoted(b []byte) {
	if s.err != nil {
		return
	}
	if s.err = s.w.WriteByte('"'); s.err != nil {
		return
	}
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			s.err = s.w.WriteByte('\\')
			if s.err == nil {
				s.err = s.w.WriteByte(c)
			}
		case c == '\n':
			s.err = s.w.WriteByte('\\')
			if s.err == nil {
				s.err = s.w.WriteByte('n')
			}
		case c == '\r':
			s.err = s.w.WriteByte('\\')
			if s.err == nil {
				s.err = s.w.WriteByte('r')
			}
		case c == '\t':
			s.err = s.w.WriteByte('\\')
			if s.err == nil {
				s.err = s.w.WriteByte('t')
			}
		case c < 0x20:
			_, s.err = s.w.WriteString("\\u00")
			if s.err == nil {
				const hex = "0123456789abcdef"
				s.err = s.w.WriteByte(hex[c>>4])
				if s.err == nil {
					s.err = s.w.WriteByte(hex[c&0xF])
				}
			}
		default:
			s.err = s.w.WriteByte(c)
		}
		if s.err != nil {
			return
		}
	}
	if s.err == nil {
		s.err = s.w.WriteByte('"')
	}
}
