// Package atlasjson (de)serializes atlas entries to and from the JSON format
// used for atlas export/import, mirroring the schema the original toolchain's
// JSON export produced: version, subAtlases, isReference, and
// referencedTextureName.
package atlasjson

import (
	json "github.com/goccy/go-json"

	"github.com/quaerus/deppth/entry"
)

type rect struct {
	X, Y, Width, Height int32
}

type point struct {
	X, Y int32
}

type fpoint struct {
	X, Y float32
}

type subAtlas struct {
	Name         string  `json:"name"`
	Rect         rect    `json:"rect"`
	TopLeft      point   `json:"topLeft"`
	OriginalSize point   `json:"originalSize"`
	ScaleRatio   fpoint  `json:"scaleRatio"`
	IsMulti      bool    `json:"isMulti"`
	IsMip        bool    `json:"isMip"`
	IsAlpha8     bool    `json:"isAlpha8"`
	Hull         []point `json:"hull"`
}

type document struct {
	Version               int32      `json:"version"`
	SubAtlases             []subAtlas `json:"subAtlases"`
	IsReference            bool       `json:"isReference"`
	ReferencedTextureName  string     `json:"referencedTextureName"`
}

// Marshal encodes an atlas entry's data as the export JSON document.
func Marshal(a *entry.AtlasEntry) ([]byte, error) {
	doc := document{
		Version:              a.Version,
		IsReference:          a.IsReference,
		ReferencedTextureName: a.ReferencedTextureName,
	}

	for _, sa := range a.SubAtlases {
		hull := make([]point, len(sa.Hull))
		for i, h := range sa.Hull {
			hull[i] = point{X: h.X, Y: h.Y}
		}

		doc.SubAtlases = append(doc.SubAtlases, subAtlas{
			Name:         sa.Name,
			Rect:         rect(sa.Rect),
			TopLeft:      point(sa.TopLeft),
			OriginalSize: point(sa.OriginalSize),
			ScaleRatio:   fpoint(sa.ScaleRatio),
			IsMulti:      sa.IsMulti,
			IsMip:        sa.IsMip,
			IsAlpha8:     sa.IsAlpha8,
			Hull:         hull,
		})
	}

	return json.Marshal(doc)
}

// Unmarshal decodes an export JSON document into data, filling in every field
// Marshal produces. For a reference atlas it also sets a.EntryName to the
// referenced texture name; for an inline atlas a.EntryName is left as it was
// and a.IncludedTexture is not filled in.
func Unmarshal(data []byte, a *entry.AtlasEntry) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	a.Version = doc.Version
	a.IsReference = doc.IsReference
	a.ReferencedTextureName = doc.ReferencedTextureName

	a.SubAtlases = make([]entry.SubAtlas, 0, len(doc.SubAtlases))
	for _, sa := range doc.SubAtlases {
		hull := make([]entry.Point, len(sa.Hull))
		for i, h := range sa.Hull {
			hull[i] = entry.Point{X: h.X, Y: h.Y}
		}

		a.SubAtlases = append(a.SubAtlases, entry.SubAtlas{
			Name:         sa.Name,
			Rect:         entry.Rect(sa.Rect),
			TopLeft:      entry.Point(sa.TopLeft),
			OriginalSize: entry.Point(sa.OriginalSize),
			ScaleRatio:   entry.FPoint(sa.ScaleRatio),
			IsMulti:      sa.IsMulti,
			IsMip:        sa.IsMip,
			IsAlpha8:     sa.IsAlpha8,
			Hull:         hull,
		})
	}

	if a.IsReference {
		a.EntryName = a.ReferencedTextureName
	}

	return nil
}
