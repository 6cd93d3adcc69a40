package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/BubbleCoding/spellfinder"
	"github.com/BubbleCoding/spellfinder/internal/config"
	"github.com/BubbleCoding/spellfinder/internal/domain/search/request"
	logpkg "github.com/BubbleCoding/spellfinder/internal/logger"
	chiTransport "github.com/BubbleCoding/spellfinder/internal/transport/chi"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	filters []string // name=value, repeatable
	sort    string
	page    int
	perPage string // number or "all"
	format  string
}

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the spell corpus",
		Long: `Search the spell corpus.

The query mixes free text with field:value clauses joined by AND/OR.
Facet filters are OR-ed within a facet and AND-ed across facets.

Examples:
  spellfinder search fireball
  spellfinder search "school:evocation AND descriptor:fire"
  spellfinder search --filter class=wizard --filter level=3 --sort level_desc
  spellfinder search "magic missile" --format json --per-page all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cfg, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.filters, "filter", "f", nil, "Facet filter as name=value (repeatable, e.g. --filter class=wizard)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort: name, name_desc, level, level_desc, school, school_desc")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number (1-based)")
	cmd.Flags().StringVarP(&opts.perPage, "per-page", "n", "", "Results per page, or 'all'")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format: text, json")

	return cmd
}

func runSearch(ctx context.Context, out io.Writer, cfg config.Config, q string, opts searchOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	searchOpts, err := opts.toClientOptions()
	if err != nil {
		return err
	}

	ctx, client, err := openClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	page, err := client.Search(ctx, q, searchOpts)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		return writeSearchJSON(out, page)
	}
	return writeSearchText(out, page)
}

func (o searchOptions) toClientOptions() (*spellfinder.SearchOptions, error) {
	out := &spellfinder.SearchOptions{Sort: o.sort, Page: o.page}

	switch strings.ToLower(strings.TrimSpace(o.perPage)) {
	case "":
	case request.PerPageAll:
		out.All = true
	default:
		n, err := strconv.Atoi(o.perPage)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid --per-page %q", o.perPage)
		}
		out.PerPage = n
	}

	if len(o.filters) > 0 {
		out.Facets = make(map[string][]string, len(o.filters))
		for _, f := range o.filters {
			name, value, ok := strings.Cut(f, "=")
			name, value = strings.TrimSpace(name), strings.TrimSpace(value)
			if !ok || name == "" || value == "" {
				return nil, fmt.Errorf("invalid --filter %q, want name=value", f)
			}
			out.Facets[name] = append(out.Facets[name], value)
		}
	}
	return out, nil
}

// openClient opens the corpus and attaches a quiet CLI logger to ctx.
func openClient(ctx context.Context, cfg config.Config) (context.Context, *spellfinder.Client, error) {
	logger, err := logpkg.NewLogger("cli", cfg.Logging.Level)
	if err != nil {
		return ctx, nil, fmt.Errorf("create logger: %w", err)
	}
	ctx = logpkg.ContextWithLogger(ctx, logger)

	client, err := spellfinder.Open(ctx, cfg.Database.Path,
		spellfinder.WithMaxOpenConns(cfg.Database.MaxOpenConns),
		spellfinder.WithBusyTimeout(cfg.Database.BusyTimeout()),
		spellfinder.WithEnrichBatchSize(cfg.Search.EnrichBatchSize),
		spellfinder.WithSearchTimeout(cfg.Search.RequestTimeout()),
		spellfinder.WithPageLimits(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize),
	)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, client, nil
}

func writeSearchJSON(out io.Writer, page *spellfinder.Page) error {
	records := make([]chiTransport.Record, len(page.Records))
	for i := range page.Records {
		records[i] = chiTransport.NewRecord(&page.Records[i])
	}
	return writeJSON(out, chiTransport.SearchResponse{
		Records: records,
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages,
	})
}

func writeSearchText(out io.Writer, page *spellfinder.Page) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCHOOL\tLEVEL\tCATEGORIES")
	for i := range page.Records {
		r := &page.Records[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.School, r.SpellLevel, strings.Join(r.Categories, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d result(s), page %d of %d\n", page.Total, page.Page, page.Pages)
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
