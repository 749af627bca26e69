package streamjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueZeroIsNull(t *testing.T) {
	var v Value
	require.Equal(t, TagNull, v.Tag())
	require.NoError(t, v.AsNull())
}

func TestValueInitAndAs(t *testing.T) {
	var v Value
	v.InitBool(true)
	b, err := v.AsBool()
	require.NoError(t, err)
	require.True(t, b)

	_, err = v.AsInt32()
	require.ErrorIs(t, err, ErrType)

	v.InitString([]byte("hi"))
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), s)
}

func TestValueArrayAppendAndInvalidation(t *testing.T) {
	var v Value
	v.InitArray()
	require.Equal(t, 0, v.ArrayLen())

	e0, err := v.ArrayAppend()
	require.NoError(t, err)
	e0.InitInt32(1)

	e1, err := v.ArrayAppend()
	require.NoError(t, err)
	e1.InitInt32(2)

	require.Equal(t, 2, v.ArrayLen())
	got0, _ := v.ArrayAt(0).AsInt32()
	got1, _ := v.ArrayAt(1).AsInt32()
	require.Equal(t, int32(1), got0)
	require.Equal(t, int32(2), got1)
}

func TestValueArrayRemoveRange(t *testing.T) {
	var v Value
	v.InitArray()
	for i := int32(0); i < 5; i++ {
		e, _ := v.ArrayAppend()
		e.InitInt32(i)
	}
	require.NoError(t, v.ArrayRemoveRange(1, 3))
	require.Equal(t, 3, v.ArrayLen())
	got0, _ := v.ArrayAt(0).AsInt32()
	got1, _ := v.ArrayAt(1).AsInt32()
	require.Equal(t, int32(0), got0)
	require.Equal(t, int32(3), got1)
}

func TestValueCloneIsDeepEqualButIndependent(t *testing.T) {
	var v Value
	v.InitDict(true)
	e := v.Dict().GetOrAdd([]byte("a"))
	e.InitInt32(7)

	clone := v.Clone()
	require.True(t, v.DeepEqual(clone))

	clone.Dict().GetOrAdd([]byte("a")).InitInt32(9)
	require.False(t, v.DeepEqual(clone))
}

func TestValueDeepEqualComparesTwoDistinctOperands(t *testing.T) {
	var a, b Value
	a.InitArray()
	ea, _ := a.ArrayAppend()
	ea.InitInt32(1)

	b.InitArray()
	eb, _ := b.ArrayAppend()
	eb.InitInt32(2)

	require.True(t, a.DeepEqual(&a))
	require.False(t, a.DeepEqual(&b))
}

func TestValueFiniIsIdempotentAndRecursive(t *testing.T) {
	var v Value
	v.InitArray()
	child, _ := v.ArrayAppend()
	child.InitString([]byte("x"))

	v.Fini()
	require.Equal(t, TagNull, v.Tag())
	v.Fini() // no-op, must not panic
	require.Equal(t, TagNull, v.Tag())
}
