package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"takeout-comments/internal/config"
	"takeout-comments/internal/report"
	"takeout-comments/internal/takeout"
	"takeout-comments/internal/youtube"
)

var noBrowser bool

var rootCmd = &cobra.Command{
	Use:   "takeout-comments [comments.csv]",
	Short: "Rank your YouTube comment history by likes",
	Long: `takeout-comments reads the comments.csv file from a Google Takeout
export of your YouTube data, asks the YouTube Data API for the current like
count and video title of every comment, and writes a CSV and a sortable
HTML report ordered by likes.

The first run walks you through a one-time OAuth device authorization; the
token is cached locally for later runs.`,
	Example: `  # Search the working directory for comments.csv
  takeout-comments

  # Point at a specific export file
  takeout-comments ~/Takeout/YouTube/comments/comments.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
	SilenceUsage: true,
}

// fetcher is the slice of the YouTube client the pipeline needs.
type fetcher interface {
	FetchLikes(ctx context.Context, commentIDs []string) []youtube.Like
	FetchTitles(ctx context.Context, videoIDs []string) map[string]string
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var csvPath string
	if len(args) > 0 {
		csvPath = args[0]
	} else {
		fmt.Println("Searching for 'comments.csv' in current directory...")
		csvPath = takeout.Find(".")
	}
	if csvPath == "" {
		return fmt.Errorf("'comments.csv' not found: provide the path or run inside the Takeout directory")
	}
	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("cannot read %s: %w", csvPath, err)
	}

	fmt.Printf("Reading: %s\n", csvPath)
	comments, err := takeout.Read(csvPath)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d comments.\n", len(comments))

	client, err := youtube.NewClient(ctx, &cfg.YouTube, &youtube.FileTokenStore{Path: cfg.YouTube.TokenFile})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	return process(ctx, os.Stdout, comments, client, cfg.Output, !noBrowser)
}

// process runs the fetch/join/report stages over already-parsed comments.
// A run where the API resolves nothing prints a failure message and writes
// no files; that is not an error, the reports would just be empty and
// misleading.
func process(ctx context.Context, w io.Writer, comments []takeout.Comment, f fetcher, out config.OutputConfig, openBrowser bool) error {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments found to process.")
		return nil
	}

	commentIDs := make([]string, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	likes := f.FetchLikes(ctx, commentIDs)
	if len(likes) == 0 {
		color.New(color.FgRed).Fprintln(w, "Failed to retrieve like counts. Check your API quota or connection.")
		return nil
	}

	entries := report.Join(comments, likes)
	titles := f.FetchTitles(ctx, report.VideoIDs(entries))

	rows, err := report.Build(entries, titles)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Resolved %d of %d comments.\n", len(rows), len(comments))

	printPreview(w, rows)

	if err := report.WriteCSV(out.CSVFile, rows); err != nil {
		return err
	}
	if err := report.WriteHTML(out.HTMLFile, rows); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(w, "Success! Reports generated:")
	fmt.Fprintf(w, " -> %s\n", out.CSVFile)
	fmt.Fprintf(w, " -> %s\n", out.HTMLFile)

	if out.OpenBrowser && openBrowser {
		if err := report.Open(out.HTMLFile); err != nil {
			color.New(color.FgYellow).Fprintf(w, "Could not open browser: %v\n", err)
		}
	}

	return nil
}

const previewLimit = 10

// printPreview shows the top liked comments on the console, the full list
// lives in the reports.
func printPreview(w io.Writer, rows []report.Row) {
	color.New(color.FgCyan).Fprintf(w, "\nTOP %d MOST LIKED COMMENTS\n", previewLimit)
	for i, r := range rows {
		if i == previewLimit {
			break
		}
		fmt.Fprintf(w, "%6d  %-78s  %s\n", r.LikeCount, truncate(r.Text, 75), r.VideoTitle)
	}
	fmt.Fprintln(w)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// Execute runs the root command. Called once from main.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the HTML report in a browser")
}
