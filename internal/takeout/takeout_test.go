package takeout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "comments.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead(t *testing.T) {
	content := "Comment ID,Channel ID,Comment Create Timestamp,Video ID,Comment Text\n" +
		"c1,ch1,2023-05-01T10:00:00+00:00,v1,\"{\"\"text\"\":\"\"Great video!\\nThanks\"\"}\"\n" +
		"c2,ch1,2023-06-02T11:30:00+00:00,,plain comment\n"

	path := writeExport(t, t.TempDir(), content)

	comments, err := Read(path)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "v1", comments[0].VideoID)
	assert.Equal(t, "2023-05-01T10:00:00+00:00", comments[0].CreatedAt)
	assert.Equal(t, "Great video!\nThanks", comments[0].Text)

	assert.Equal(t, "c2", comments[1].ID)
	assert.Empty(t, comments[1].VideoID)
	assert.Equal(t, "plain comment", comments[1].Text)
}

func TestReadMissingRequiredColumn(t *testing.T) {
	path := writeExport(t, t.TempDir(), "Channel ID,Comment Text\nch1,hello\n")

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Comment ID")
}

func TestReadEmptyExport(t *testing.T) {
	path := writeExport(t, t.TempDir(), "Comment ID,Comment Text\n")

	comments, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestReadSkipsRowsWithoutID(t *testing.T) {
	path := writeExport(t, t.TempDir(), "Comment ID,Comment Text\n,orphaned\nc1,kept\n")

	comments, err := Read(path)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "Takeout", "YouTube and YouTube Music", "comments")
	require.NoError(t, os.MkdirAll(nested, 0755))
	want := filepath.Join(nested, "comments.csv")
	require.NoError(t, os.WriteFile(want, []byte("Comment ID,Comment Text\n"), 0644))

	assert.Equal(t, want, Find(root))
}

func TestFindNothing(t *testing.T) {
	assert.Empty(t, Find(t.TempDir()))
}
