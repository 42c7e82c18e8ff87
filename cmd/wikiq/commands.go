package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
	"github.com/spf13/cobra"
)

func searchCommand(opts *globalOptions) *cobra.Command {
	var limit int
	var all bool
	var cont string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Full-text search for article titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseCursor(cont)
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			first, err := client.SearchFrom(ctx, args[0], limit, from)
			if err != nil {
				return err
			}
			titles := first.Results
			if all {
				if titles, err = wikipedia.Aggregate(ctx, first); err != nil {
					return err
				}
			}
			result := wikipedia.SearchResult{
				Query:   args[0],
				Titles:  titles,
				Count:   len(titles),
				HasMore: !all && first.HasNext(),
			}
			if result.HasMore {
				result.Cursor = first.Cursor
			}
			return opts.printResult(cmd.OutOrStdout(), result, printLines(titles))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "results per request")
	cmd.Flags().BoolVar(&all, "all", false, "follow continuation until every result is fetched")
	cmd.Flags().StringVar(&cont, "continue", "", "resume after a previous result's cursor, as key=value")
	return cmd
}

// parseCursor reads a --continue value of the form key=value. An empty
// string means start from the first page.
func parseCursor(s string) (*wikipedia.Cursor, error) {
	if s == "" {
		return nil, nil
	}
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" || value == "" {
		return nil, fmt.Errorf("invalid --continue %q: want key=value", s)
	}
	return &wikipedia.Cursor{Key: key, Value: value}, nil
}

func randomCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick random article titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			titles, err := client.Random(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), titles, printLines(titles))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 1, "number of titles")
	return cmd
}

func geosearchCommand(opts *globalOptions) *cobra.Command {
	var radius int

	cmd := &cobra.Command{
		Use:   "geosearch LAT LON",
		Short: "Find articles near a coordinate",
		Long: `Find articles near a coordinate given in decimal degrees.
Put -- before negative values: wikiq geosearch -- -33.8568 151.2153`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}
			if err := wikipedia.ValidateCoordinates(lat, lon); err != nil {
				return err
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			titles, err := client.GeoSearch(cmd.Context(), lat, lon, radius)
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), titles, printLines(titles))
		},
	}
	cmd.Flags().IntVar(&radius, "radius", 1000, "search radius in meters")
	return cmd
}

// resolve validates the title and looks the page up
func (o *globalOptions) resolve(ctx context.Context, title string) (*wikipedia.Page, error) {
	if err := wikipedia.ValidateTitle(title); err != nil {
		return nil, err
	}
	client, err := o.newClient()
	if err != nil {
		return nil, err
	}
	return client.Page(ctx, title)
}

func pageCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "page TITLE",
		Short: "Show page info: ID, canonical title, URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := opts.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), page, func(w io.Writer) {
				fmt.Fprintf(w, "Title:     %s\n", page.Title)
				fmt.Fprintf(w, "Page ID:   %d\n", page.PageID)
				fmt.Fprintf(w, "Namespace: %d\n", page.Namespace)
				if page.FullURL != "" {
					fmt.Fprintf(w, "URL:       %s\n", page.FullURL)
				}
				if page.Disambiguation {
					fmt.Fprintln(w, "Disambiguation page")
				}
			})
		},
	}
}

func textCommand(opts *globalOptions, name, short string, get func(*wikipedia.Page, context.Context) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " TITLE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := opts.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			text, err := get(page, cmd.Context())
			if err != nil {
				return err
			}
			result := wikipedia.TextResult{Title: page.Title, Text: text, Length: len(text)}
			return opts.printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintln(w, text)
			})
		},
	}
}

func urlsCommand(opts *globalOptions, name, short string, get func(*wikipedia.Page, context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " TITLE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := opts.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			urls, err := get(page, cmd.Context())
			if err != nil {
				return err
			}
			result := wikipedia.URLsResult{Title: page.Title, URLs: urls, Count: len(urls)}
			return opts.printResult(cmd.OutOrStdout(), result, printLines(urls))
		},
	}
}

func listCommand(opts *globalOptions, name, short string, get func(*wikipedia.Page, context.Context, int, *wikipedia.Cursor) (*wikipedia.PageResult[string], error)) *cobra.Command {
	var limit int
	var all bool
	var cont string

	cmd := &cobra.Command{
		Use:   name + " TITLE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseCursor(cont)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			page, err := opts.resolve(ctx, args[0])
			if err != nil {
				return err
			}
			first, err := get(page, ctx, limit, from)
			if err != nil {
				return err
			}

			titles := first.Results
			if all {
				if titles, err = wikipedia.Aggregate(ctx, first); err != nil {
					return err
				}
			}
			result := wikipedia.TitlesResult{
				Title:   page.Title,
				Titles:  titles,
				Count:   len(titles),
				HasMore: !all && first.HasNext(),
			}
			if result.HasMore {
				result.Cursor = first.Cursor
			}
			return opts.printResult(cmd.OutOrStdout(), result, printLines(titles))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "results per request (0 asks for the server maximum)")
	cmd.Flags().BoolVar(&all, "all", false, "follow continuation until every result is fetched")
	cmd.Flags().StringVar(&cont, "continue", "", "resume after a previous result's cursor, as key=value")
	return cmd
}

func coordinatesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "coordinates TITLE",
		Short: "Show the primary coordinates of the article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := opts.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			coords, err := page.Coordinates(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), coords, func(w io.Writer) {
				fmt.Fprintf(w, "%g, %g\n", coords.Lat, coords.Lon)
			})
		},
	}
}

func infoboxCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "infobox TITLE",
		Short: "Print the infobox fields of the article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := opts.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fields, err := page.Infobox(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), fields, func(w io.Writer) {
				keys := make([]string, 0, len(fields))
				for k := range fields {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%s = %s\n", k, fields[k])
				}
			})
		},
	}
}

// benchCommand measures round-trip latency of search requests against the
// configured endpoint, then the cost of following every continuation.
func benchCommand(opts *globalOptions) *cobra.Command {
	var runs, limit int

	cmd := &cobra.Command{
		Use:   "bench QUERY",
		Short: "Measure search latency against the configured endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("runs must be at least 1, got %d", runs)
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "=== Search latency: %q against %s ===\n", args[0], client.Endpoint())
			var total, fastest, slowest time.Duration
			for i := 0; i < runs; i++ {
				start := time.Now()
				if _, err := client.Search(ctx, args[0], limit); err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
				elapsed := time.Since(start)
				total += elapsed
				if i == 0 || elapsed < fastest {
					fastest = elapsed
				}
				if elapsed > slowest {
					slowest = elapsed
				}
			}
			fmt.Fprintf(w, "   Runs:    %d\n", runs)
			fmt.Fprintf(w, "   Fastest: %v\n", fastest)
			fmt.Fprintf(w, "   Slowest: %v\n", slowest)
			fmt.Fprintf(w, "   Average: %v\n", total/time.Duration(runs))
			fmt.Fprintln(w)

			fmt.Fprintln(w, "=== Aggregated search (every continuation) ===")
			start := time.Now()
			titles, err := client.SearchAll(ctx, args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "   Results: %d\n", len(titles))
			fmt.Fprintf(w, "   Time:    %v\n", time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 5, "number of single-page searches to time")
	cmd.Flags().IntVar(&limit, "limit", 10, "results per request")
	return cmd
}
