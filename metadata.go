package uniquify

import (
	"bytes"

	"github.com/bep/imagemeta"
)

// AssetMetadata holds the identifying EXIF/XMP fields embedded in an image.
// These fields fingerprint an asset's provenance independently of its pixel
// content, which is why inspection surfaces them: a re-encode through the
// transform pipeline drops them.
type AssetMetadata struct {
	CameraMake  string
	CameraModel string
	Software    string
	CreateDate  string
	Artist      string
	Copyright   string
	Creator     string // XMP dc:creator
	HasGPS      bool
}

// IsEmpty reports whether no identifying field was found.
func (m *AssetMetadata) IsEmpty() bool {
	return m == nil || (*m == AssetMetadata{})
}

// wantedTags maps (source, tag-name) → true for every identifying tag the
// inspection report cares about.
var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Make":         true,
		"Model":        true,
		"Software":     true,
		"DateTime":     true,
		"Artist":       true,
		"Copyright":    true,
		"GPSLatitude":  true,
		"GPSLongitude": true,
	},
	imagemeta.XMP: {
		"Creator":    true,
		"CreateDate": true,
	},
}

// ExtractAssetMetadata parses identifying EXIF/XMP metadata from raw image
// bytes. Returns nil if the data is empty, carries no wanted tags, or cannot
// be parsed. Graceful degradation: never returns an error.
func ExtractAssetMetadata(data []byte) *AssetMetadata {
	if len(data) == 0 {
		return nil
	}

	meta := &AssetMetadata{}
	found := false

	err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			switch ti.Source {
			case imagemeta.EXIF:
				handleEXIFTag(meta, ti, &found)
			case imagemeta.XMP:
				handleXMPTag(meta, ti, &found)
			}
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return meta
}

func handleEXIFTag(meta *AssetMetadata, ti imagemeta.TagInfo, found *bool) {
	switch ti.Tag {
	case "GPSLatitude", "GPSLongitude":
		meta.HasGPS = true
		*found = true
		return
	}

	s := tagValueString(ti.Value)
	if s == "" {
		return
	}

	switch ti.Tag {
	case "Make":
		meta.CameraMake = s
	case "Model":
		meta.CameraModel = s
	case "Software":
		meta.Software = s
	case "DateTime":
		meta.CreateDate = s
	case "Artist":
		meta.Artist = s
	case "Copyright":
		meta.Copyright = s
	default:
		return
	}

	*found = true
}

func handleXMPTag(meta *AssetMetadata, ti imagemeta.TagInfo, found *bool) {
	switch ti.Tag {
	case "Creator":
		if s := tagValueString(ti.Value); s != "" {
			meta.Creator = s
			*found = true
		}
	case "CreateDate":
		if s := tagValueString(ti.Value); s != "" && meta.CreateDate == "" {
			meta.CreateDate = s
			*found = true
		}
	}
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
