package streamjson

import (
	"bytes"
	"fmt"
)

// Tag is the discriminant of a Value's live payload (spec.md §3).
type Tag int

// The ten VALUE tags. There is no separate single-precision FLOAT tag;
// every non-integer number is held as DOUBLE.
const (
	TagNull Tag = iota
	TagBool
	TagInt32
	TagUint32
	TagInt64
	TagUint64
	TagDouble
	TagString
	TagArray
	TagDict
	numTags
)

var tagNames = [numTags]string{
	"null", "bool", "int32", "uint32", "int64", "uint64",
	"double", "string", "array", "dict",
}

// String returns a lower-case name for the tag, or "<unknown>" for an
// out-of-range value.
func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return "<unknown>"
	}
	return tagNames[t]
}

// Value is the tagged variant described by spec.md §3. The zero Value is a
// valid NULL. IsNew distinguishes slots materialized by a recent
// get-or-add call (Dict.GetOrAdd, the JSON Pointer resolver) from
// pre-existing ones; ordinary initialization clears it.
type Value struct {
	tag   Tag
	isNew bool

	b   bool
	i32 int32
	u32 uint32
	i64 int64
	u64 uint64
	f64 float64
	str []byte

	arr  []*Value
	dict *Dict
}

// Tag reports the value's current discriminant.
func (v *Value) Tag() Tag { return v.tag }

// IsNew reports whether this slot was just created by a get-or-add style
// operation and has not yet been given a real value.
func (v *Value) IsNew() bool { return v.isNew }

func (v *Value) clearNew() { v.isNew = false }

// Fini finalizes v, recursively releasing any owned children, and returns
// it to the NULL state. Finalizing an already-NULL value is a no-op.
func (v *Value) Fini() {
	switch v.tag {
	case TagArray:
		for _, e := range v.arr {
			e.Fini()
		}
	case TagDict:
		if v.dict != nil {
			v.dict.fini()
		}
	}
	*v = Value{}
}

// InitNull transitions v to NULL, finalizing any previous payload.
func (v *Value) InitNull() { v.Fini() }

// InitBool transitions v to BOOL with value b.
func (v *Value) InitBool(b bool) {
	v.Fini()
	v.tag, v.b = TagBool, b
}

// InitInt32 transitions v to INT32.
func (v *Value) InitInt32(n int32) {
	v.Fini()
	v.tag, v.i32 = TagInt32, n
}

// InitUint32 transitions v to UINT32.
func (v *Value) InitUint32(n uint32) {
	v.Fini()
	v.tag, v.u32 = TagUint32, n
}

// InitInt64 transitions v to INT64.
func (v *Value) InitInt64(n int64) {
	v.Fini()
	v.tag, v.i64 = TagInt64, n
}

// InitUint64 transitions v to UINT64.
func (v *Value) InitUint64(n uint64) {
	v.Fini()
	v.tag, v.u64 = TagUint64, n
}

// InitDouble transitions v to DOUBLE.
func (v *Value) InitDouble(f float64) {
	v.Fini()
	v.tag, v.f64 = TagDouble, f
}

// InitString transitions v to STRING, copying s (the string owns its
// bytes; a NUL is permitted inside).
func (v *Value) InitString(s []byte) {
	v.Fini()
	v.tag = TagString
	v.str = append([]byte(nil), s...)
}

// InitArray transitions v to an empty ARRAY.
func (v *Value) InitArray() {
	v.Fini()
	v.tag = TagArray
}

// InitDict transitions v to an empty DICT. maintainOrder selects the
// intrusive insertion-order index in addition to the always-present
// BST-keyed lookup index.
func (v *Value) InitDict(maintainOrder bool) {
	v.Fini()
	v.tag = TagDict
	v.dict = newDict(maintainOrder)
}

// AsNull returns ErrType unless v is NULL.
func (v *Value) AsNull() error {
	if v.tag != TagNull {
		return fmt.Errorf("%w: value is %s, not null", ErrType, v.tag)
	}
	return nil
}

// AsBool extracts a bool, or ErrType if v is not BOOL.
func (v *Value) AsBool() (bool, error) {
	if v.tag != TagBool {
		return false, fmt.Errorf("%w: value is %s, not bool", ErrType, v.tag)
	}
	return v.b, nil
}

// AsInt32 extracts an int32, or ErrType if v is not INT32.
func (v *Value) AsInt32() (int32, error) {
	if v.tag != TagInt32 {
		return 0, fmt.Errorf("%w: value is %s, not int32", ErrType, v.tag)
	}
	return v.i32, nil
}

// AsUint32 extracts a uint32, or ErrType if v is not UINT32.
func (v *Value) AsUint32() (uint32, error) {
	if v.tag != TagUint32 {
		return 0, fmt.Errorf("%w: value is %s, not uint32", ErrType, v.tag)
	}
	return v.u32, nil
}

// AsInt64 extracts an int64, or ErrType if v is not INT64.
func (v *Value) AsInt64() (int64, error) {
	if v.tag != TagInt64 {
		return 0, fmt.Errorf("%w: value is %s, not int64", ErrType, v.tag)
	}
	return v.i64, nil
}

// AsUint64 extracts a uint64, or ErrType if v is not UINT64.
func (v *Value) AsUint64() (uint64, error) {
	if v.tag != TagUint64 {
		return 0, fmt.Errorf("%w: value is %s, not uint64", ErrType, v.tag)
	}
	return v.u64, nil
}

// AsDouble extracts a float64, or ErrType if v is not DOUBLE.
func (v *Value) AsDouble() (float64, error) {
	if v.tag != TagDouble {
		return 0, fmt.Errorf("%w: value is %s, not double", ErrType, v.tag)
	}
	return v.f64, nil
}

// AsString extracts the string bytes, or ErrType if v is not STRING. The
// returned slice must not be mutated by the caller.
func (v *Value) AsString() ([]byte, error) {
	if v.tag != TagString {
		return nil, fmt.Errorf("%w: value is %s, not string", ErrType, v.tag)
	}
	return v.str, nil
}

// Dict returns the underlying Dict, or nil if v is not DICT.
func (v *Value) Dict() *Dict {
	if v.tag != TagDict {
		return nil
	}
	return v.dict
}

// ArrayLen returns the number of elements, or 0 if v is not ARRAY.
func (v *Value) ArrayLen() int {
	if v.tag != TagArray {
		return 0
	}
	return len(v.arr)
}

// ArrayAt returns the element at i, or nil if v is not ARRAY or i is out
// of range. Per spec.md §4.4, the returned pointer may be invalidated by a
// subsequent mutation of v; callers must re-fetch after mutation.
func (v *Value) ArrayAt(i int) *Value {
	if v.tag != TagArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// ArrayAppend grows the array by one NULL element and returns a pointer to
// it. Existing element pointers may be invalidated by the growth.
func (v *Value) ArrayAppend() (*Value, error) {
	if v.tag != TagArray {
		return nil, fmt.Errorf("%w: value is %s, not array", ErrType, v.tag)
	}
	v.arr = append(v.arr, &Value{})
	return v.arr[len(v.arr)-1], nil
}

// ArrayRemoveRange removes the half-open range [start,end) from the array.
func (v *Value) ArrayRemoveRange(start, end int) error {
	if v.tag != TagArray {
		return fmt.Errorf("%w: value is %s, not array", ErrType, v.tag)
	}
	n := len(v.arr)
	if start < 0 || end < start || end > n {
		return fmt.Errorf("%w: array index range [%d,%d) out of bounds (len %d)", ErrType, start, end, n)
	}
	for _, e := range v.arr[start:end] {
		e.Fini()
	}
	v.arr = append(v.arr[:start], v.arr[end:]...)
	return nil
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	nv := &Value{
		tag: v.tag, isNew: v.isNew,
		b: v.b, i32: v.i32, u32: v.u32, i64: v.i64, u64: v.u64, f64: v.f64,
	}
	switch v.tag {
	case TagString:
		nv.str = append([]byte(nil), v.str...)
	case TagArray:
		nv.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			nv.arr[i] = e.Clone()
		}
	case TagDict:
		nv.dict = v.dict.clone()
	}
	return nv
}

// DeepEqual reports whether v and o have identical tags and payloads,
// recursing into ARRAY/DICT structure. Unlike the deep-equality helper
// noted as buggy in spec.md §9 (which compared a value against itself),
// this genuinely compares the two distinct operands.
func (v *Value) DeepEqual(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.tag != o.tag {
		return false
	}
	switch v.tag {
	case TagNull:
		return true
	case TagBool:
		return v.b == o.b
	case TagInt32:
		return v.i32 == o.i32
	case TagUint32:
		return v.u32 == o.u32
	case TagInt64:
		return v.i64 == o.i64
	case TagUint64:
		return v.u64 == o.u64
	case TagDouble:
		return v.f64 == o.f64
	case TagString:
		return bytes.Equal(v.str, o.str)
	case TagArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].DeepEqual(o.arr[i]) {
				return false
			}
		}
		return true
	case TagDict:
		return v.dict.deepEqual(o.dict)
	default:
		return false
	}
}

// Equal makes Value usable directly with github.com/google/go-cmp: cmp
// detects and calls this method instead of reflecting into the unexported
// tagged-union fields.
func (v *Value) Equal(o *Value) bool {
	return v.DeepEqual(o)
}
