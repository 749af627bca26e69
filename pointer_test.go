package streamjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointerGetBasic(t *testing.T) {
	root, err := parseToValue(t, `{"foo":["bar","baz"]}`, DupKeyUseLast)
	require.NoError(t, err)

	got := PointerGet(root, "/foo/0")
	require.NotNil(t, got)
	s, _ := got.AsString()
	require.Equal(t, "bar", string(s))
}

func TestPointerEmptyRefersToRoot(t *testing.T) {
	root, err := parseToValue(t, `{"a":1}`, DupKeyUseLast)
	require.NoError(t, err)
	require.Same(t, root, PointerGet(root, ""))
}

func TestPointerNegativeIndexExtension(t *testing.T) {
	root, err := parseToValue(t, `{"arr":[10,20,30]}`, DupKeyUseLast)
	require.NoError(t, err)

	// "-1" is the last element, "-2" the one before, matching
	// original_source/src/json-ptr.c's index = size - n.
	last := PointerGet(root, "/arr/-1")
	n, _ := last.AsInt32()
	require.Equal(t, int32(30), n)

	prev := PointerGet(root, "/arr/-2")
	n, _ = prev.AsInt32()
	require.Equal(t, int32(20), n)

	// "-0" names the append position, one past the last element, so it
	// resolves nothing under Get, same as bare "-".
	require.Nil(t, PointerGet(root, "/arr/-0"))
}

func TestPointerNegativeZeroAppendsLikeDash(t *testing.T) {
	root, err := parseToValue(t, `{"foo":["bar","baz"]}`, DupKeyUseLast)
	require.NoError(t, err)

	added := PointerAdd(root, "/foo/-0")
	require.NotNil(t, added)
	require.True(t, added.IsNew())
	require.Equal(t, 3, PointerGet(root, "/foo").ArrayLen())
}

func TestPointerDashAppendsNewSlot(t *testing.T) {
	root, err := parseToValue(t, `{"foo":["bar","baz"]}`, DupKeyUseLast)
	require.NoError(t, err)

	added := PointerAdd(root, "/foo/-")
	require.NotNil(t, added)
	require.True(t, added.IsNew())
	require.Equal(t, 3, PointerGet(root, "/foo").ArrayLen())
}

func TestPointerAddFailsOnExistingTerminal(t *testing.T) {
	root, err := parseToValue(t, `{"a":1}`, DupKeyUseLast)
	require.NoError(t, err)
	require.Nil(t, PointerAdd(root, "/a"))
}

func TestPointerAddCreatesIntermediateContainers(t *testing.T) {
	var root Value
	root.InitDict(false)

	v := PointerAdd(&root, "/a/b/0")
	require.NotNil(t, v)
	require.Equal(t, TagArray, root.Dict().Get([]byte("a")).Dict().Get([]byte("b")).Tag())
}

func TestPointerEscapes(t *testing.T) {
	var root Value
	root.InitDict(false)
	root.Dict().GetOrAdd([]byte("a/b")).InitInt32(1)
	root.Dict().GetOrAdd([]byte("c~d")).InitInt32(2)

	v := PointerGet(&root, "/a~1b")
	n, _ := v.AsInt32()
	require.Equal(t, int32(1), n)

	v = PointerGet(&root, "/c~0d")
	n, _ = v.AsInt32()
	require.Equal(t, int32(2), n)
}

func TestPointerInvalidEscapeFails(t *testing.T) {
	var root Value
	root.InitDict(false)
	require.Nil(t, PointerGet(&root, "/a~2"))
}

func TestPointerDigitKeyOnObjectNeverMatchesAsKey(t *testing.T) {
	var root Value
	root.InitDict(false)
	root.Dict().GetOrAdd([]byte("0")).InitInt32(42)

	require.Nil(t, PointerGet(&root, "/0"))
}

func TestPointerGetOrAddReusesExisting(t *testing.T) {
	root, err := parseToValue(t, `{"a":1}`, DupKeyUseLast)
	require.NoError(t, err)

	v := PointerGetOrAdd(root, "/a")
	require.False(t, v.IsNew())
	n, _ := v.AsInt32()
	require.Equal(t, int32(1), n)
}
