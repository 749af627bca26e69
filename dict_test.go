package streamjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictGetOrAddMarksNewOnlyOnce(t *testing.T) {
	d := newDict(false)
	v1 := d.GetOrAdd([]byte("k"))
	require.True(t, v1.IsNew())
	v1.InitInt32(1)

	v2 := d.GetOrAdd([]byte("k"))
	require.False(t, v2.IsNew())
	n, err := v2.AsInt32()
	require.NoError(t, err)
	require.Equal(t, int32(1), n)
	require.Equal(t, 1, d.Size())
}

func TestDictKeysSortedOrder(t *testing.T) {
	d := newDict(false)
	d.GetOrAdd([]byte("banana"))
	d.GetOrAdd([]byte("apple"))
	d.GetOrAdd([]byte("cherry"))

	keys := d.Keys(KeySorted)
	require.Equal(t, [][]byte{[]byte("apple"), []byte("banana"), []byte("cherry")}, keys)
}

func TestDictKeysInsertionOrder(t *testing.T) {
	d := newDict(true)
	d.GetOrAdd([]byte("banana"))
	d.GetOrAdd([]byte("apple"))
	d.GetOrAdd([]byte("cherry"))

	keys := d.Keys(KeyInsertion)
	require.Equal(t, [][]byte{[]byte("banana"), []byte("apple"), []byte("cherry")}, keys)
}

func TestDictRemove(t *testing.T) {
	d := newDict(true)
	d.GetOrAdd([]byte("a")).InitInt32(1)
	require.True(t, d.Remove([]byte("a")))
	require.False(t, d.Remove([]byte("a")))
	require.Equal(t, 0, d.Size())
	require.Nil(t, d.Get([]byte("a")))
}

func TestDictCloneIndependence(t *testing.T) {
	d := newDict(true)
	d.GetOrAdd([]byte("a")).InitInt32(1)

	clone := d.clone()
	require.True(t, d.deepEqual(clone))

	clone.GetOrAdd([]byte("a")).InitInt32(2)
	require.False(t, d.deepEqual(clone))
}
