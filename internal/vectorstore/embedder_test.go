package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticEmbedder_Deterministic(t *testing.T) {
	e := NewStaticEmbedder()
	v1, err := e.Embed(context.Background(), "func RenderWidget() {}")
	require.NoError(t, err)
	v2, err := e.Embed(context.Background(), "func RenderWidget() {}")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestStaticEmbedder_EmptyTextReturnsZeroVector(t *testing.T) {
	e := NewStaticEmbedder()
	v, err := e.Embed(context.Background(), "   ")
	require.NoError(t, err)
	for _, f := range v {
		assert.Zero(t, f)
	}
}

func TestStaticEmbedder_DistinctTextsDiffer(t *testing.T) {
	e := NewStaticEmbedder()
	v1, _ := e.Embed(context.Background(), "render widget tree")
	v2, _ := e.Embed(context.Background(), "compute checksum value")
	assert.NotEqual(t, v1, v2)
}

func TestStaticEmbedder_Dimensions(t *testing.T) {
	e := NewStaticEmbedder()
	assert.Equal(t, StaticDimensions, e.Dimensions())
}
