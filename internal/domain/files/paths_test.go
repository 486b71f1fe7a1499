package files_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/files"
)

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "plan.pdf", files.SanitizeFileName("plan.pdf"))
	require.Equal(t, "plan.pdf", files.SanitizeFileName("../../etc/plan.pdf"))
	require.Equal(t, "plan.pdf", files.SanitizeFileName(`C:\uploads\plan.pdf`))
	require.Equal(t, "plan_v2_.pdf", files.SanitizeFileName("plan<v2>.pdf"))
	require.Equal(t, "unnamed", files.SanitizeFileName(""))
	require.Equal(t, "unnamed", files.SanitizeFileName(".."))
}

func TestFolderFor(t *testing.T) {
	at := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Casa Norte/2026/03", files.FolderFor("Casa Norte", at))
}

func TestUniqueName(t *testing.T) {
	at := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	name := files.UniqueName("photo.jpg", at)
	require.Contains(t, name, "photo.jpg")
	require.NotEqual(t, files.UniqueName("photo.jpg", at.Add(time.Millisecond)), name)
}
