package streamjson

import (
	"strconv"
	"strings"
)

// pointerOp distinguishes the three navigation operations of spec.md §4.7,
// mirroring json-ptr.c's JSON_PTR_OP.
type pointerOp int

const (
	ptrGet pointerOp = iota
	ptrAdd
	ptrGetOrAdd
)

// PointerGet resolves pointer against root read-only, returning nil if any
// token along the path misses.
func PointerGet(root *Value, pointer string) *Value {
	return resolvePointer(root, pointer, ptrGet)
}

// PointerAdd resolves pointer against root, creating the terminal slot (and
// any missing intermediate containers). It fails — returning nil — if the
// terminal slot already exists, or if pointer is "" (the root always
// exists and can never be "added").
func PointerAdd(root *Value, pointer string) *Value {
	return resolvePointer(root, pointer, ptrAdd)
}

// PointerGetOrAdd resolves pointer against root, returning the existing
// slot or creating it (and any missing intermediate containers) along the
// way. The returned Value's IsNew reports which happened.
func PointerGetOrAdd(root *Value, pointer string) *Value {
	return resolvePointer(root, pointer, ptrGetOrAdd)
}

// resolvePointer implements RFC 6901 navigation/creation, generalizing
// json-ptr.c's json_ptr_impl: a single forward walk over '/'-separated
// tokens, each resolved against the node reached so far. isNew tracks
// whether the *current* node was just created by this call, so that a
// trailing ptrAdd on an already-existing terminal can be rejected.
func resolvePointer(root *Value, pointer string, op pointerOp) *Value {
	if pointer == "" {
		if op == ptrAdd {
			return nil
		}
		return root
	}

	rest := pointer
	if rest[0] == '/' {
		rest = rest[1:]
	}

	v := root
	isNew := false

	for {
		tok, remainder, more := cutToken(rest)

		key, neg, isIndex, ok := classifyToken(tok)
		if !ok {
			return nil
		}

		if isIndex {
			if isNew {
				v.InitArray()
			}
			if v.Tag() != TagArray {
				return nil
			}

			size := v.ArrayLen()
			index := key
			switch {
			case tok == "-":
				index = size
			case neg:
				// "-0" is the append position, identical to bare "-"; "-1" is
				// the last element, and so on: index = size-n, valid for
				// 0 <= n <= size.
				if index > size {
					return nil
				}
				index = size - index
			}

			next := v.ArrayAt(index)
			if next == nil && op != ptrGet && index == v.ArrayLen() {
				var err error
				next, err = v.ArrayAppend()
				if err != nil {
					return nil
				}
				next.isNew = true
				isNew = true
			} else {
				isNew = false
			}
			v = next
		} else {
			decoded, ok := unescapeToken(tok)
			if !ok {
				return nil
			}

			if isNew {
				v.InitDict(false)
			}
			if v.Tag() != TagDict {
				return nil
			}

			if op == ptrGet {
				v = v.Dict().Get(decoded)
				isNew = false
			} else {
				v = v.Dict().GetOrAdd(decoded)
				isNew = v.IsNew()
			}
		}

		if v == nil {
			return nil
		}
		if !more {
			break
		}
		rest = remainder
	}

	if op == ptrAdd && !isNew {
		return nil
	}
	return v
}

// cutToken splits the next '/'-delimited token off rest, reporting whether
// another token follows.
func cutToken(rest string) (tok, remainder string, more bool) {
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], rest[i+1:], true
	}
	return rest, "", false
}

// classifyToken decides whether tok denotes an array index (the literal
// "-", or an unsigned decimal with no leading zero unless the whole token
// is "0", optionally preceded by '-' for the negative-index extension) or
// an object key.
func classifyToken(tok string) (index int, neg, isIndex, ok bool) {
	if tok == "-" {
		return 0, false, true, true
	}

	digits := tok
	if strings.HasPrefix(tok, "-") {
		neg = true
		digits = tok[1:]
	}
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false, false, true // not an index; treat as object key
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false, false, true
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, false, true
	}
	return n, neg, true, true
}

// unescapeToken applies the RFC 6901 ~0/~1 escapes, failing on any '~' not
// followed by '0' or '1'.
func unescapeToken(tok string) ([]byte, bool) {
	if !strings.ContainsRune(tok, '~') {
		return []byte(tok), true
	}
	out := make([]byte, 0, len(tok))
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			out = append(out, tok[i])
			continue
		}
		if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
			return nil, false
		}
		if tok[i+1] == '0' {
			out = append(out, '~')
		} else {
			out = append(out, '/')
		}
		i++
	}
	return out, true
}
