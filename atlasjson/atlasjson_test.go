package atlasjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaerus/deppth/entry"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	original := &entry.AtlasEntry{
		Version: 3,
		SubAtlases: []entry.SubAtlas{
			{
				Name:         "sprite",
				Rect:         entry.Rect{X: 1, Y: 2, Width: 3, Height: 4},
				TopLeft:      entry.Point{X: 1, Y: 1},
				OriginalSize: entry.Point{X: 10, Y: 10},
				ScaleRatio:   entry.FPoint{X: 1.5, Y: 1.5},
				IsMulti:      true,
				Hull:         []entry.Point{{X: 0, Y: 0}, {X: 3, Y: 4}},
			},
		},
		IsReference:           true,
		ReferencedTextureName: "shared.xnb",
	}

	data, err := Marshal(original)
	require.NoError(t, err)

	var got entry.AtlasEntry
	require.NoError(t, Unmarshal(data, &got))

	assert.Equal(t, original.Version, got.Version)
	assert.Equal(t, original.IsReference, got.IsReference)
	assert.Equal(t, original.ReferencedTextureName, got.ReferencedTextureName)
	assert.Equal(t, "shared.xnb", got.EntryName)
	require.Len(t, got.SubAtlases, 1)
	assert.Equal(t, original.SubAtlases[0], got.SubAtlases[0])
}
