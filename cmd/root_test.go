package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout-comments/internal/config"
	"takeout-comments/internal/takeout"
	"takeout-comments/internal/youtube"
)

type fakeFetcher struct {
	likes      []youtube.Like
	titles     map[string]string
	likeCalls  int
	titleCalls int
}

func (f *fakeFetcher) FetchLikes(ctx context.Context, commentIDs []string) []youtube.Like {
	f.likeCalls++
	return f.likes
}

func (f *fakeFetcher) FetchTitles(ctx context.Context, videoIDs []string) map[string]string {
	f.titleCalls++
	return f.titles
}

func outputInto(dir string) config.OutputConfig {
	return config.OutputConfig{
		CSVFile:  filepath.Join(dir, "out.csv"),
		HTMLFile: filepath.Join(dir, "out.html"),
	}
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

func TestProcessZeroComments(t *testing.T) {
	out := outputInto(t.TempDir())
	fake := &fakeFetcher{}
	var buf bytes.Buffer

	err := process(context.Background(), &buf, nil, fake, out, false)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No comments found to process.")
	assert.Zero(t, fake.likeCalls)
	assertNoFile(t, out.CSVFile)
	assertNoFile(t, out.HTMLFile)
}

func TestProcessZeroLikesWritesNothing(t *testing.T) {
	out := outputInto(t.TempDir())
	fake := &fakeFetcher{} // API resolves none of the comments
	var buf bytes.Buffer

	comments := []takeout.Comment{{ID: "c1", Text: "hello"}}
	err := process(context.Background(), &buf, comments, fake, out, false)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Failed to retrieve like counts")
	assert.Equal(t, 1, fake.likeCalls)
	assert.Zero(t, fake.titleCalls)
	assertNoFile(t, out.CSVFile)
	assertNoFile(t, out.HTMLFile)
}

func TestProcessWritesBothReports(t *testing.T) {
	out := outputInto(t.TempDir())
	fake := &fakeFetcher{
		likes: []youtube.Like{
			{CommentID: "c1", LikeCount: 3, PublishedAt: "2023-05-01T10:00:00Z", VideoID: "v1"},
			{CommentID: "c2", LikeCount: 9, PublishedAt: "2023-06-01T10:00:00Z", VideoID: "v2"},
		},
		titles: map[string]string{"v1": "First", "v2": "Second"},
	}
	var buf bytes.Buffer

	comments := []takeout.Comment{
		{ID: "c1", Text: "one"},
		{ID: "c2", Text: "two"},
		{ID: "gone", Text: "deleted"},
	}
	err := process(context.Background(), &buf, comments, fake, out, false)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Resolved 2 of 3 comments.")
	assert.Contains(t, buf.String(), "Success! Reports generated:")

	csvData, err := os.ReadFile(out.CSVFile)
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "two")

	htmlData, err := os.ReadFile(out.HTMLFile)
	require.NoError(t, err)
	assert.Contains(t, string(htmlData), "Second")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 75))
	long := make([]rune, 80)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 75)
	assert.Len(t, []rune(got), 78)
	assert.Contains(t, got, "...")
}
