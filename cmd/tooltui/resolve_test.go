package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tooltui/internal/geometry"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts("10, 10,100,40", ",", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 100, 40}, got)

	_, err = parseInts("10,10", ",", 4)
	assert.Error(t, err)

	_, err = parseInts("1024xabc", "x", 2)
	assert.Error(t, err)
}

func TestWriteResolve(t *testing.T) {
	res := resolveResult{
		Requested: geometry.Top,
		Flipped:   true,
		Position:  geometry.Position{Top: 58, Left: 20, Placement: geometry.Bottom},
	}

	var buf bytes.Buffer
	require.NoError(t, writeResolve(&buf, "text", res))
	assert.Equal(t, "top=58 left=20 placement=bottom (flipped from top)\n", buf.String())

	buf.Reset()
	require.NoError(t, writeResolve(&buf, "json", res))
	assert.JSONEq(t, `{"requested":"top","flipped":true,"position":{"top":58,"left":20,"placement":"bottom"}}`, buf.String())

	buf.Reset()
	require.NoError(t, writeResolve(&buf, "yaml", res))
	var decoded resolveResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res, decoded)

	assert.Error(t, writeResolve(&buf, "xml", res))
}
