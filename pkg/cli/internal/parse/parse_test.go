package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nksaraf/magiql/pkg/gqlast"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		in, key, value string
		ok             bool
	}{
		{in: "id=4", key: "id", value: "4", ok: true},
		{in: "where={a: 1}", key: "where", value: "{a: 1}", ok: true},
		{in: "q=a=b", key: "q", value: "a=b", ok: true},
		{in: "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, value, ok := KeyValue(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}

	key, value, ok := KeyValue("a:b", ':')
	assert.True(t, ok)
	assert.Equal(t, "a", key)
	assert.Equal(t, "b", value)
}

func TestArguments(t *testing.T) {
	args, err := Arguments([]string{"id=4", ` name = "ada"`})
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "id", args[0].Name)
	assert.Equal(t, &gqlast.IntValue{Value: "4"}, args[0].Value)
	assert.Equal(t, "name", args[1].Name)
	assert.Equal(t, gqlast.KindStringValue, args[1].Value.Kind())

	_, err = Arguments([]string{"=4"})
	assert.ErrorContains(t, err, "expected name=value")

	_, err = Arguments([]string{"id=[1,"})
	var syntaxErr *gqlast.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}
