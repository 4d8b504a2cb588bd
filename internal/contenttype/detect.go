// Package contenttype determines the MIME type of files before upload.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Default is used when nothing better can be determined.
const Default = "application/octet-stream"

// SniffLength is the number of leading bytes inspected by Detect.
const SniffLength = 3072

// Detect determines the content type using mimetype where the content is
// recognised, falling back to an extension-based lookup.
func Detect(name string, head []byte) string {
	if len(head) > SniffLength {
		head = head[:SniffLength]
	}

	if len(head) > 0 {
		if mt := mimetype.Detect(head); mt != nil && !mt.Is(Default) && !mt.Is("text/plain") {
			return mt.String()
		}
	}

	if byExt := FromExtension(name); byExt != Default {
		return byExt
	}

	// Plain text sniffing is only trusted when the extension says nothing.
	if len(head) > 0 {
		if mt := mimetype.Detect(head); mt != nil {
			return mt.String()
		}
	}

	return Default
}

// FromExtension looks the type up by file extension only.
func FromExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return Default
	}
	if byExt, ok := audioTypes[ext]; ok {
		return byExt
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}
	return Default
}

// audioTypes takes precedence over the system MIME tables, which disagree
// on audio types across platforms.
var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
}
