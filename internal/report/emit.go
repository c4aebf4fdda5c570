package report

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	"github.com/pkg/browser"
)

//go:embed template.html
var templateFS embed.FS

var csvHeader = []string{"Like Count", "Comment", "Video ID", "Video Title", "Published At", "Video URL"}

// WriteCSV writes every row with all columns to path.
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.LikeCount, 10),
			r.Text,
			r.VideoID,
			r.VideoTitle,
			r.PublishedAt,
			r.VideoURL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

type htmlReport struct {
	GeneratedAt string
	Total       int
	Rows        []Row
}

// WriteHTML renders the sortable report table to path. The template links
// each row to its video; html/template handles the escaping, so titles and
// comment text stay safe while the anchor markup stays live.
func WriteHTML(path string, rows []Row) error {
	tmpl, err := template.ParseFS(templateFS, "template.html")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	data := htmlReport{
		GeneratedAt: time.Now().Format(timeLayout),
		Total:       len(rows),
		Rows:        rows,
	}
	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// Open opens the report in the default browser.
func Open(path string) error {
	return browser.OpenFile(path)
}
