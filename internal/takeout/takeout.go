// Package takeout locates and parses the comments.csv file from a Google
// Takeout export of YouTube comment history.
package takeout

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const exportFileName = "comments.csv"

// Comment is one row of the Takeout export.
type Comment struct {
	ID        string
	RawText   string
	Text      string // RawText after CleanText
	VideoID   string
	CreatedAt string
}

// Find walks the directory tree under root looking for comments.csv and
// returns the first match, or "" if none exists.
func Find(root string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep looking elsewhere
		}
		if !d.IsDir() && d.Name() == exportFileName {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// Read parses the export file. Column order varies between Takeout
// versions, so columns are resolved by header name. Comment ID and Comment
// Text are required; Video ID and the timestamp column are optional.
func Read(path string) ([]Comment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}

	idCol, ok := cols["Comment ID"]
	if !ok {
		return nil, fmt.Errorf("%s has no 'Comment ID' column", path)
	}
	textCol, ok := cols["Comment Text"]
	if !ok {
		return nil, fmt.Errorf("%s has no 'Comment Text' column", path)
	}

	videoCol, hasVideo := cols["Video ID"]
	createdCol, hasCreated := cols["Comment Create Timestamp"]
	if !hasCreated {
		createdCol, hasCreated = cols["Published At"]
	}

	var comments []Comment
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		field := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}

		c := Comment{
			ID:      field(idCol),
			RawText: field(textCol),
		}
		c.Text = CleanText(c.RawText)
		if hasVideo {
			c.VideoID = field(videoCol)
		}
		if hasCreated {
			c.CreatedAt = field(createdCol)
		}
		if c.ID == "" {
			continue
		}
		comments = append(comments, c)
	}

	return comments, nil
}
