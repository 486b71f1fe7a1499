package files

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

// SanitizeFileName strips path separators and control characters so a stored
// name can never escape its folder.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			continue
		case strings.ContainsRune(`<>:"|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" || out == "." || out == ".." {
		return "unnamed"
	}
	return out
}

// FolderFor returns the year/month folder an upload belongs under.
func FolderFor(projectName string, at time.Time) string {
	return path.Join(SanitizeFileName(projectName), fmt.Sprintf("%04d", at.Year()), fmt.Sprintf("%02d", int(at.Month())))
}

// UniqueName prefixes the sanitized name with a timestamp so repeated
// uploads of the same file never collide.
func UniqueName(name string, at time.Time) string {
	return fmt.Sprintf("%d_%s", at.UnixMilli(), SanitizeFileName(name))
}
