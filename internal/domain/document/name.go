package document

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxDisplayNameLen = 255

// Extensions that may be carried over from the original filename onto the
// on-disk storage name. Anything else is stored without an extension.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// NewStorageName derives the opaque on-disk filename for an upload:
// 16 random bytes hex-encoded, plus the original extension if (and only if)
// that extension is whitelisted. The original filename never reaches the
// filesystem path.
func NewStorageName(originalName string) string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("document: rand.Read: " + err.Error())
	}
	name := hex.EncodeToString(buf)

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; ok {
		name += ext
	}
	return name
}

// SanitizeDisplayName produces a safe human-readable filename from
// client-supplied input: path components, traversal sequences, control
// characters and characters illegal in filenames are stripped, and the
// result is capped at 255 bytes without splitting a rune. Falls back to
// "document" when nothing survives.
func SanitizeDisplayName(original string) string {
	// Keep only the last path segment; handles both separator styles and
	// absolute prefixes in one step.
	name := original
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		switch r {
		case '/', '\\', '<', '>', ':', '"', '|', '?', '*', 0:
			continue
		}
		b.WriteRune(r)
	}
	name = b.String()

	// A bare run of dots is never a useful display name and "." / ".."
	// are reserved.
	if strings.Trim(name, ".") == "" {
		name = ""
	}

	if name == "" {
		return "document"
	}
	if len(name) > maxDisplayNameLen {
		// Back off to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxDisplayNameLen
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}
