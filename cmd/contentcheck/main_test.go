package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckEmbeddedContent(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, check(&out, zap.NewNop()))
	assert.Contains(t, out.String(), "ok: 3 items, 2 prefabs, 1 levels")
}
