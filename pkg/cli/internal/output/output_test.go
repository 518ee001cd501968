package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	_, _ = tw.Write([]byte("a\tbb\n"))
	_, _ = tw.Write([]byte("ccc\td\n"))
	require.NoError(t, tw.Flush())
	assert.Equal(t, "a    bb\nccc  d\n", buf.String())
}

func TestDim(t *testing.T) {
	assert.Equal(t, "x", Dim("x", false))
	assert.Equal(t, "\x1b[2mx\x1b[0m", Dim("x", true))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.Equal(t, "", Indent(0))
	assert.Equal(t, "    ", Indent(2))
}
