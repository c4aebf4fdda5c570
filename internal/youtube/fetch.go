package youtube

import (
	"context"
	"log"
	"strings"

	"github.com/schollz/progressbar/v3"
	yt "google.golang.org/api/youtube/v3"
)

// The API caps id-list lookups at 50 per request.
const batchSize = 50

// Like is the API-side view of one comment.
type Like struct {
	CommentID   string
	LikeCount   int64
	PublishedAt string
	VideoID     string
}

// FetchLikes looks up like counts for the given comment IDs, 50 per
// request. A failed batch is logged and skipped; the identifiers the API no
// longer resolves are simply absent from the result.
func (c *Client) FetchLikes(ctx context.Context, commentIDs []string) []Like {
	return fetchLikes(commentIDs, func(ids []string) ([]*yt.Comment, error) {
		resp, err := c.service.Comments.List([]string{"snippet"}).
			Id(strings.Join(ids, ",")).
			TextFormat("plainText").
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
}

func fetchLikes(commentIDs []string, list func([]string) ([]*yt.Comment, error)) []Like {
	var likes []Like
	bar := newBar(len(commentIDs), "Fetching comment likes")
	defer bar.Finish()

	for i, batch := range chunk(commentIDs, batchSize) {
		items, err := list(batch)
		if err != nil {
			log.Printf("Warning: failed to fetch likes for batch %d: %v", i+1, err)
			continue
		}
		for _, item := range items {
			if item.Snippet == nil {
				continue
			}
			likes = append(likes, Like{
				CommentID:   item.Id,
				LikeCount:   item.Snippet.LikeCount,
				PublishedAt: item.Snippet.PublishedAt,
				VideoID:     item.Snippet.VideoId,
			})
		}
		_ = bar.Add(len(batch))
	}

	return likes
}

// FetchTitles resolves video IDs to display titles. The input is
// deduplicated and empty IDs are dropped before chunking; a failed batch is
// logged and skipped.
func (c *Client) FetchTitles(ctx context.Context, videoIDs []string) map[string]string {
	return fetchTitles(videoIDs, func(ids []string) ([]*yt.Video, error) {
		resp, err := c.service.Videos.List([]string{"snippet"}).
			Id(strings.Join(ids, ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
}

func fetchTitles(videoIDs []string, list func([]string) ([]*yt.Video, error)) map[string]string {
	unique := uniqueNonEmpty(videoIDs)
	titles := make(map[string]string, len(unique))
	bar := newBar(len(unique), "Fetching video titles")
	defer bar.Finish()

	for i, batch := range chunk(unique, batchSize) {
		items, err := list(batch)
		if err != nil {
			log.Printf("Warning: failed to fetch titles for batch %d: %v", i+1, err)
			continue
		}
		for _, item := range items {
			if item.Snippet == nil {
				continue
			}
			titles[item.Id] = item.Snippet.Title
		}
		_ = bar.Add(len(batch))
	}

	return titles
}

// chunk splits ids into consecutive slices of at most size elements.
func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[i:end])
	}
	return batches
}

// uniqueNonEmpty drops empty ids and duplicates while keeping first-seen
// order.
func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}
