package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/paper-downloader/internal/catalog"
	"github.com/ytget/paper-downloader/internal/config"
	"github.com/ytget/paper-downloader/internal/download"
	"github.com/ytget/paper-downloader/internal/logging"
	"github.com/ytget/paper-downloader/internal/model"
	"github.com/ytget/paper-downloader/internal/render"
	"github.com/ytget/paper-downloader/internal/selection"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var errNoPapers = errors.New("no papers match the selection")

type options struct {
	catalogSource string
	verbose       bool
	logger        *zap.Logger
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "paper-downloader",
		Short:         "Browse and download previous year question papers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}
			logger, err := logging.New(opts.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.catalogSource, "catalog", config.DefaultCatalogSource, "Catalog URL or path (JSON or YAML)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newSubjectsCmd(),
		newListCmd(opts),
		newFetchCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "paper-downloader version %s\n", version)
			},
		},
	)
	return cmd
}

// selectionFlags registers the class/medium/subject flags shared by list and fetch
func selectionFlags(cmd *cobra.Command, sel *model.Selection) {
	cmd.Flags().StringVar(&sel.Class, "class", model.DefaultClass, "Class (10th or 12th)")
	cmd.Flags().StringVar(&sel.Medium, "medium", config.DefaultMedium, "Medium (english or hindi)")
	cmd.Flags().StringVar(&sel.Subject, "subject", "", "Subject, as listed by the subjects command")
}

func newSubjectsCmd() *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects offered for a class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.IsKnownClass(class) {
				return fmt.Errorf("%w: %q", selection.ErrUnknownClass, class)
			}
			for _, subject := range model.AvailableSubjects(class) {
				fmt.Fprintln(cmd.OutOrStdout(), subject)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", model.DefaultClass, "Class (10th or 12th)")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var sel model.Selection
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the papers for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := resolve(cmd.Context(), cmd.ErrOrStderr(), opts, sel)
			if err != nil {
				return err
			}
			return render.WriteText(cmd.OutOrStdout(), view)
		},
	}
	selectionFlags(cmd, &sel)
	return cmd
}

func newFetchCmd(opts *options) *cobra.Command {
	var (
		sel      model.Selection
		year     string
		dir      string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the papers for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, loader, err := resolve(cmd.Context(), cmd.ErrOrStderr(), opts, sel)
			if err != nil {
				return err
			}
			cards := filterYear(view.Cards, year)
			if len(cards) == 0 {
				return fmt.Errorf("%w: %s", errNoPapers, view.Caption)
			}
			fetcher := download.NewFetcher(loader, opts.logger)
			return fetchAll(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), fetcher, cards, dir, parallel, opts.logger)
		},
	}
	selectionFlags(cmd, &sel)
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().StringVar(&year, "year", "", "Only this year")
	cmd.Flags().StringVar(&dir, "dir", config.DefaultDownloadDirectory(), "Directory to save papers into")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", config.DefaultMaxParallel, "Parallel downloads (1-10)")
	return cmd
}

// resolve loads the catalog and runs sel through the selection machine
func resolve(ctx context.Context, stderr io.Writer, opts *options, sel model.Selection) (model.View, *catalog.Loader, error) {
	loader := catalog.NewLoader(opts.catalogSource, catalog.WithLogger(opts.logger))
	papers, origin := loader.Load(ctx)
	if origin == catalog.OriginFallback {
		fmt.Fprintf(stderr, "warning: could not load %s, showing built-in papers\n", loader.Source())
	}

	view, err := selection.NewMachine(papers, opts.logger).Apply(sel)
	if err != nil {
		return model.View{}, nil, err
	}
	return view, loader, nil
}

func filterYear(cards []model.Card, year string) []model.Card {
	if year == "" {
		return cards
	}
	var out []model.Card
	for _, c := range cards {
		if c.Year == year {
			out = append(out, c)
		}
	}
	return out
}

// fetchAll saves every available card, at most parallel at a time. Unavailable
// papers are skipped with a warning; failures are collected and returned together.
func fetchAll(ctx context.Context, stdout, stderr io.Writer, fetcher *download.Fetcher, cards []model.Card, dir string, parallel int, logger *zap.Logger) error {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		errs    []error
		saved   int
		skipped int
	)
	g.SetLimit(config.ClampParallel(parallel))

	for _, c := range cards {
		if !c.Available() {
			logger.Warn("paper not available", zap.String("subject", c.Subject), zap.String("year", c.Year))
			fmt.Fprintf(stderr, "warning: %s %s is not available yet, skipping\n", c.Subject, c.Year)
			skipped++
			continue
		}

		g.Go(func() error {
			path, err := fetcher.Fetch(ctx, c.URL, dir, c.FileName, nil)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.FileName, err))
				return nil
			}
			saved++
			fmt.Fprintf(stdout, "saved %s\n", path)
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(stdout, "%d saved, %d skipped, %d failed\n", saved, skipped, len(errs))
	return errors.Join(errs...)
}
