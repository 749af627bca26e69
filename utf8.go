package streamjson

// UTF8Mode selects how the lexer reacts to ill-formed UTF-8 inside string
// content, per spec.md §4.2.
type UTF8Mode int

const (
	// UTF8Strict rejects any ill-formed byte sequence with INVALIDUTF8.
	UTF8Strict UTF8Mode = iota
	// UTF8Ignore passes ill-formed bytes through unchanged.
	UTF8Ignore
	// UTF8Fix substitutes each maximal ill-formed subpart with U+FFFD.
	UTF8Fix
)

// utf8Scanner incrementally validates a stream of raw string-content bytes,
// one byte at a time, so that it behaves identically regardless of how the
// caller partitions the input (spec.md's chunk-boundary robustness
// requirement applies to C2 exactly as it does to C3). It follows the
// Unicode "maximal subpart" replacement convention: the bytes of an
// ill-formed sequence are collected up to the point a valid continuation
// could no longer follow and are reported/replaced as one unit (a single
// U+FFFD in fix mode), and the offending byte is then re-examined as the
// start of a fresh sequence.
type utf8Scanner struct {
	need   int // additional continuation bytes still required, 0 = idle
	seq    [4]byte
	seqLen int
	lo, hi byte // valid range for the sequence's 2nd byte
}

func (s *utf8Scanner) reset() {
	s.need = 0
	s.seqLen = 0
}

func (s *utf8Scanner) start(lead byte, need int, lo, hi byte) {
	s.seq[0] = lead
	s.seqLen = 1
	s.need = need
	s.lo, s.hi = lo, hi
}

// push feeds one raw byte through the scanner, appending accepted bytes
// (valid sequences verbatim, or mode-dependent replacements for ill-formed
// ones) to *out. It returns ErrInvalidUTF8 in UTF8Strict mode as soon as an
// ill-formed sequence is detected.
func (s *utf8Scanner) push(b byte, mode UTF8Mode, out *[]byte) error {
	for {
		if s.need == 0 {
			switch {
			case b < 0x80:
				*out = append(*out, b)
				return nil
			case b >= 0xC2 && b <= 0xDF:
				s.start(b, 1, 0x80, 0xBF)
				return nil
			case b == 0xE0:
				s.start(b, 2, 0xA0, 0xBF)
				return nil
			case b == 0xED:
				s.start(b, 2, 0x80, 0x9F) // excludes surrogate range
				return nil
			case b >= 0xE1 && b <= 0xEC, b >= 0xEE && b <= 0xEF:
				s.start(b, 2, 0x80, 0xBF)
				return nil
			case b == 0xF0:
				s.start(b, 3, 0x90, 0xBF)
				return nil
			case b == 0xF4:
				s.start(b, 3, 0x80, 0x8F) // excludes > U+10FFFF
				return nil
			case b >= 0xF1 && b <= 0xF3:
				s.start(b, 3, 0x80, 0xBF)
				return nil
			default:
				// Invalid lead byte, or an orphan continuation byte.
				return emitIllFormed([]byte{b}, mode, out)
			}
		}

		lo, hi := byte(0x80), byte(0xBF)
		if s.seqLen == 1 {
			lo, hi = s.lo, s.hi
		}
		if b < lo || b > hi {
			seq := append([]byte(nil), s.seq[:s.seqLen]...)
			s.reset()
			if err := emitIllFormed(seq, mode, out); err != nil {
				return err
			}
			continue // re-examine b as the start of a fresh sequence
		}

		s.seq[s.seqLen] = b
		s.seqLen++
		if s.seqLen == s.need+1 {
			*out = append(*out, s.seq[:s.seqLen]...)
			s.reset()
		}
		return nil
	}
}

// flushIncomplete resolves any sequence left pending (e.g. truncated by a
// closing quote or a backslash) as ill-formed.
func (s *utf8Scanner) flushIncomplete(mode UTF8Mode, out *[]byte) error {
	if s.need == 0 {
		return nil
	}
	seq := append([]byte(nil), s.seq[:s.seqLen]...)
	s.reset()
	return emitIllFormed(seq, mode, out)
}

func emitIllFormed(seq []byte, mode UTF8Mode, out *[]byte) error {
	switch mode {
	case UTF8Ignore:
		*out = append(*out, seq...)
		return nil
	case UTF8Fix:
		*out = append(*out, 0xEF, 0xBF, 0xBD)
		return nil
	default: // UTF8Strict
		return ErrInvalidUTF8
	}
}

// encodeSurrogateUnit mechanically applies the ordinary 3-byte UTF-8
// encoding formula to a lone UTF-16 surrogate code unit (U+D800..U+DFFF),
// a value that is never a valid scalar on its own. Feeding the three
// resulting bytes back through utf8Scanner.push reproduces the Unicode
// maximal-subpart rule exactly: the lead byte 0xED together with a second
// byte in 0xA0-0xBF is specifically excluded by the scanner, so each of the
// three bytes is rejected individually — which is why a lone "\uD83D"
// becomes three U+FFFD in fix mode (spec.md §8, seed scenario 3), not one.
func encodeSurrogateUnit(cp uint16) [3]byte {
	return [3]byte{
		0xE0 | byte(cp>>12),
		0x80 | byte((cp>>6)&0x3F),
		0x80 | byte(cp&0x3F),
	}
}

func isHighSurrogate(cp uint16) bool { return cp >= 0xD800 && cp <= 0xDBFF }
func isLowSurrogate(cp uint16) bool  { return cp >= 0xDC00 && cp <= 0xDFFF }
