package product

import (
	"fmt"
	"strings"

	"shopzone.GO/model/entity"
)

// ParseMedia reads a pipe-separated media cell. Each entry is
// "image:<url>", "video:<url>" or a bare URL, which counts as an image.
func ParseMedia(val string) ([]entity.Media, error) {
	var out []entity.Media
	for _, part := range strings.Split(val, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := entity.Media{Type: entity.MediaImage, URL: part}
		if kind, url, ok := strings.Cut(part, ":"); ok {
			switch strings.ToLower(kind) {
			case "image":
				m.URL = strings.TrimSpace(url)
			case "video":
				m = entity.Media{Type: entity.MediaVideo, URL: strings.TrimSpace(url)}
			case "http", "https":
				// bare URL
			default:
				return nil, fmt.Errorf("media %q: unknown type %q", part, kind)
			}
		}
		if m.URL == "" {
			return nil, fmt.Errorf("media %q: empty url", part)
		}
		out = append(out, m)
	}
	return out, nil
}

// FormatMedia is the inverse of ParseMedia.
func FormatMedia(media []entity.Media) string {
	parts := make([]string, len(media))
	for i, m := range media {
		parts[i] = string(m.Type) + ":" + m.URL
	}
	return strings.Join(parts, "|")
}
