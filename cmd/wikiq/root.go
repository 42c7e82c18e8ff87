package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	lang    string
	apiURL  string
	timeout time.Duration
	asJSON  bool
	debug   bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "wikiq",
		Short:         "Query the Wikipedia API",
		Long:          `wikiq searches Wikipedia and reads article content through the MediaWiki query API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "edition to query: en or fr (default from WIKIPEDIA_LANG, else en)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "explicit api.php URL, overrides --lang")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default from WIKIPEDIA_TIMEOUT, else 30s)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log requests to stderr")

	root.AddCommand(
		searchCommand(opts),
		randomCommand(opts),
		geosearchCommand(opts),
		pageCommand(opts),
		textCommand(opts, "content", "Print the plain-text article", (*wikipedia.Page).Content),
		textCommand(opts, "summary", "Print the plain-text introduction", (*wikipedia.Page).Summary),
		textCommand(opts, "html", "Print the rendered HTML", (*wikipedia.Page).HTML),
		urlsCommand(opts, "images", "List image URLs used on the article", (*wikipedia.Page).Images),
		urlsCommand(opts, "references", "List external links of the article", (*wikipedia.Page).References),
		listCommand(opts, "links", "List articles linked from the article", (*wikipedia.Page).LinksPageFrom),
		listCommand(opts, "categories", "List categories of the article", (*wikipedia.Page).CategoriesPageFrom),
		listCommand(opts, "backlinks", "List pages linking to the article", (*wikipedia.Page).BacklinksPageFrom),
		coordinatesCommand(opts),
		infoboxCommand(opts),
		benchCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "wikiq version", version)
			},
		},
	)

	return root
}

const version = "1.0.0"

// newClient builds a client from the environment, then applies flag overrides
func (o *globalOptions) newClient() (*wikipedia.Client, error) {
	config, err := wikipedia.LoadConfig()
	if err != nil {
		return nil, err
	}

	overrides := &wikipedia.Config{
		Language: o.lang,
		BaseURL:  o.apiURL,
		Timeout:  o.timeout,
	}
	// An explicit edition flag replaces an API URL coming from the environment
	if o.lang != "" && o.apiURL == "" {
		config.BaseURL = ""
	}
	config = wikipedia.MergeConfig(config, overrides, wikipedia.MergeCallerWins)

	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return wikipedia.NewClient(config, wikipedia.WithLogger(logger))
}

// printResult writes v as indented JSON when --json is set, else calls text
func (o *globalOptions) printResult(w io.Writer, v any, text func(io.Writer)) error {
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printLines(lines []string) func(io.Writer) {
	return func(w io.Writer) {
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
	}
}
