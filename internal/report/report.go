// Package report joins the Takeout rows with the API results and writes the
// final artifacts.
package report

import (
	"fmt"
	"sort"
	"time"

	"takeout-comments/internal/takeout"
	"takeout-comments/internal/youtube"
)

const (
	timeLayout   = "2006-01-02 15:04"
	unknownTitle = "Unknown Video"
	watchURL     = "https://www.youtube.com/watch?v="
)

// Entry is one comment that survived the inner join with the like fetch.
type Entry struct {
	Comment takeout.Comment
	Like    youtube.Like
	VideoID string // coalesced: API value first, Takeout value as fallback
}

// Row is the final projection written to the reports.
type Row struct {
	LikeCount   int64
	Text        string
	VideoID     string
	VideoTitle  string
	PublishedAt string
	VideoURL    string
}

// Join matches comments against fetched likes by comment ID. Comments the
// API did not resolve (deleted videos, removed comments) are dropped. Input
// order is preserved.
func Join(comments []takeout.Comment, likes []youtube.Like) []Entry {
	byID := make(map[string]youtube.Like, len(likes))
	for _, l := range likes {
		byID[l.CommentID] = l
	}

	var entries []Entry
	for _, c := range comments {
		like, ok := byID[c.ID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Comment: c,
			Like:    like,
			VideoID: coalesce(like.VideoID, c.VideoID),
		})
	}
	return entries
}

// VideoIDs returns the resolved video ID of every entry, in order.
// Duplicates are fine here; the title fetch deduplicates.
func VideoIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
	}
	return ids
}

// Build produces the sorted report rows: titles resolved against the fetched
// map, like counts descending (stable on ties), timestamps reformatted for
// display. An unparseable timestamp is an error; the API emits RFC 3339 and
// anything else means the data is not what we think it is.
func Build(entries []Entry, titles map[string]string) ([]Row, error) {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		published, err := formatTimestamp(e.Like.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("comment %s: %w", e.Comment.ID, err)
		}

		title, ok := titles[e.VideoID]
		if !ok || title == "" {
			title = unknownTitle
		}

		// No resolved video means no link; a watch URL without an ID
		// would render as a live but dangling anchor.
		var videoURL string
		if e.VideoID != "" {
			videoURL = watchURL + e.VideoID
		}

		rows = append(rows, Row{
			LikeCount:   e.Like.LikeCount,
			Text:        e.Comment.Text,
			VideoID:     e.VideoID,
			VideoTitle:  title,
			PublishedAt: published,
			VideoURL:    videoURL,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LikeCount > rows[j].LikeCount
	})

	return rows, nil
}

func formatTimestamp(value string) (string, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("unparseable publish timestamp %q: %w", value, err)
	}
	return t.Format(timeLayout), nil
}

// coalesce returns the first non-empty candidate.
func coalesce(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
