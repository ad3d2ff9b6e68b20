package petstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCollection(t *testing.T) {
	values := []string{"available", "sold"}
	tests := []struct {
		format CollectionFormat
		want   []string
	}{
		{CollectionCSV, []string{"status=available%2Csold"}},
		{CollectionSSV, []string{"status=available%20sold"}},
		{CollectionTSV, []string{"status=available%09sold"}},
		{CollectionPipes, []string{"status=available%7Csold"}},
		{CollectionMulti, []string{"status=available", "status=sold"}},
		{CollectionFormat("bogus"), []string{"status=available%2Csold"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, encodeCollection("status", values, tt.format))
		})
	}
}

func TestParseCollectionFormat(t *testing.T) {
	f, err := ParseCollectionFormat("")
	require.NoError(t, err)
	assert.Equal(t, CollectionCSV, f)

	f, err = ParseCollectionFormat("Pipes")
	require.NoError(t, err)
	assert.Equal(t, CollectionPipes, f)

	f, err = ParseCollectionFormat("multi")
	require.NoError(t, err)
	assert.Equal(t, CollectionMulti, f)

	_, err = ParseCollectionFormat("semicolon")
	assert.Error(t, err)
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "hello%20world", encodeComponent("hello world"))
	assert.Equal(t, "a%2Fb%3Fc%26d", encodeComponent("a/b?c&d"))
	assert.Equal(t, "caf%C3%A9", encodeComponent("café"))
	assert.Equal(t, "a(b)!*'~-_.", encodeComponent("a(b)!*'~-_."))
	assert.Equal(t, "%2B%3D%23%25", encodeComponent("+=#%"))
}

func TestEncodeCollectionKeepsUnreservedMarks(t *testing.T) {
	assert.Equal(t, []string{"tags=a(b)!*'~"}, encodeCollection("tags", []string{"a(b)!*'~"}, CollectionCSV))
	assert.Equal(t, []string{"tags=x%20y", "tags=it's"}, encodeCollection("tags", []string{"x y", "it's"}, CollectionMulti))
}
