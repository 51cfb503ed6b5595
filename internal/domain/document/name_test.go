//go:build unit

package document_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"reimburse-api/internal/domain/document"

	"github.com/stretchr/testify/assert"
)

var storageNamePattern = regexp.MustCompile(`^[0-9a-f]{32}(\.(pdf|jpg|jpeg|png))?$`)

func TestNewStorageName(t *testing.T) {
	cases := []struct {
		name     string
		original string
		wantExt  string
	}{
		{"pdf keeps extension", "invoice.pdf", ".pdf"},
		{"jpeg keeps extension", "photo.JPEG", ".jpeg"},
		{"png keeps extension", "scan.png", ".png"},
		{"unknown extension dropped", "shell.sh", ""},
		{"double extension keeps only last", "report.pdf.exe", ""},
		{"no extension", "README", ""},
		{"traversal in name", "../../etc/passwd.png", ".png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := document.NewStorageName(tc.original)
			assert.Regexp(t, storageNamePattern, got)
			if tc.wantExt == "" {
				assert.Len(t, got, 32)
			} else {
				assert.True(t, strings.HasSuffix(got, tc.wantExt), got)
			}
		})
	}

	t.Run("names are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			n := document.NewStorageName("a.pdf")
			_, dup := seen[n]
			assert.False(t, dup)
			seen[n] = struct{}{}
		}
	})
}

func TestSanitizeDisplayName(t *testing.T) {
	cases := []struct {
		name     string
		original string
		want     string
	}{
		{"plain name untouched", "invoice enero.pdf", "invoice enero.pdf"},
		{"unix path stripped", "/etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\foo\doc.pdf`, "doc.pdf"},
		{"traversal stripped", "../../secret.pdf", "secret.pdf"},
		{"control characters removed", "inv\x00oi\nce.pdf", "invoice.pdf"},
		{"reserved characters removed", `in<v>o:i"c|e?*.pdf`, "invoice.pdf"},
		{"dot only falls back", ".", "document"},
		{"dot dot falls back", "..", "document"},
		{"empty falls back", "", "document"},
		{"only separators falls back", "///", "document"},
		{"unicode preserved", "factura_médica.pdf", "factura_médica.pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, document.SanitizeDisplayName(tc.original))
		})
	}

	t.Run("long name truncated", func(t *testing.T) {
		got := document.SanitizeDisplayName(strings.Repeat("a", 300) + ".pdf")
		assert.Len(t, got, 255)
	})

	t.Run("truncation never splits a rune", func(t *testing.T) {
		// 200 two-byte runes put the byte limit mid-rune.
		got := document.SanitizeDisplayName(strings.Repeat("é", 200) + ".pdf")
		assert.LessOrEqual(t, len(got), 255)
		assert.True(t, utf8.ValidString(got), got)
	})
}
