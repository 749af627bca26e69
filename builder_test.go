package streamjson

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseToValue(t *testing.T, input string, dup DupKeyPolicy) (*Value, error) {
	t.Helper()
	return ParseValue(NewConfig(), []byte(input), true, dup)
}

func TestBuilderObjectAndArray(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"b":[2,3],"c":null}`, DupKeyUseLast)
	require.NoError(t, err)
	require.Equal(t, TagDict, v.Tag())

	a, err := v.Dict().Get([]byte("a")).AsInt32()
	require.NoError(t, err)
	require.Equal(t, int32(1), a)

	arr := v.Dict().Get([]byte("b"))
	require.Equal(t, 2, arr.ArrayLen())
	e0, _ := arr.ArrayAt(0).AsInt32()
	require.Equal(t, int32(2), e0)

	require.Equal(t, TagNull, v.Dict().Get([]byte("c")).Tag())
}

func TestBuilderDuplicateKeyUseFirst(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"a":2}`, DupKeyUseFirst)
	require.NoError(t, err)
	n, _ := v.Dict().Get([]byte("a")).AsInt32()
	require.Equal(t, int32(1), n)
	require.Equal(t, 1, v.Dict().Size())
}

func TestBuilderDuplicateKeyUseFirstDiscardsContainerValue(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"a":{"x":2}}`, DupKeyUseFirst)
	require.NoError(t, err)
	require.Equal(t, 1, v.Dict().Size())
	n, _ := v.Dict().Get([]byte("a")).AsInt32()
	require.Equal(t, int32(1), n)
}

func TestBuilderDuplicateKeyUseFirstDiscardsNestedContainerValue(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"a":{"x":[1,2,{"y":3}],"z":4}}`, DupKeyUseFirst)
	require.NoError(t, err)
	require.Equal(t, 1, v.Dict().Size())
	n, _ := v.Dict().Get([]byte("a")).AsInt32()
	require.Equal(t, int32(1), n)
}

func TestBuilderDuplicateKeyUseLast(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"a":2}`, DupKeyUseLast)
	require.NoError(t, err)
	n, _ := v.Dict().Get([]byte("a")).AsInt32()
	require.Equal(t, int32(2), n)
}

func TestBuilderDuplicateKeyAbort(t *testing.T) {
	_, err := parseToValue(t, `{"a":1,"a":2}`, DupKeyAbort)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDupKey)
}

func TestBuilderRoundTripThroughSerialize(t *testing.T) {
	v, err := parseToValue(t, `{"a":1,"b":[true,false,null,"s",1.5]}`, DupKeyUseLast)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, v, SerializeOptions{Mode: SerializeMinimize}))

	reparsed, err := ParseValue(NewConfig(), buf.Bytes(), true, DupKeyUseLast)
	require.NoError(t, err)
	if diff := cmp.Diff(v, reparsed); diff != "" {
		t.Errorf("round trip changed value (-want +got):\n%s", diff)
	}
}
