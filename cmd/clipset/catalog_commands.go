package main

import (
	"fmt"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"clipset/internal/catalog"
	"clipset/internal/manifest"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the dataset catalog",
	}

	catalogCmd.AddCommand(newCatalogIngestCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))
	catalogCmd.AddCommand(newCatalogPruneCommand(ctx))

	return catalogCmd
}

func (c *commandContext) withCatalog(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newCatalogIngestCommand(ctx *commandContext) *cobra.Command {
	var split string

	cmd := &cobra.Command{
		Use:   "ingest <manifest.json>",
		Short: "Record a manifest's entries under a dataset split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger().With("component", "catalog")

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			return ctx.withCatalog(func(store *catalog.Store) error {
				return store.WithLock(func() error {
					bar := progressbar.NewOptions(m.Len(),
						progressbar.OptionSetDescription("ingesting"),
						progressbar.OptionSetWriter(cmd.ErrOrStderr()),
						progressbar.OptionClearOnFinish(),
					)
					res, err := store.Ingest(cmd.Context(), split, m, func(int) {
						_ = bar.Add(1)
					})
					if err != nil {
						return err
					}

					logger.Info("split ingested", "split", res.Split, "entries", res.Inserted, "run", res.RunID)
					fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d entries into split %q (run %s)\n",
						res.Inserted, res.Split, res.RunID)
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVarP(&split, "split", "s", "train", "Split name to ingest into")
	return cmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [split]",
		Short: "Show clip counts per split, or the label distribution of one split",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					stats, err := store.SplitStats(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					rows := make([][]string, 0, len(stats.Labels))
					for _, lc := range stats.Labels {
						rows = append(rows, []string{strconv.Itoa(int(lc.Label)), strconv.Itoa(lc.Count)})
					}
					fmt.Fprintln(out, renderTable([]string{"Label", "Clips"}, rows, []columnAlignment{alignRight, alignRight}))
					fmt.Fprintf(out, "%d clips in split %q\n", stats.Count, stats.Split)
					return nil
				}

				splits, err := store.Splits(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(splits))
				for _, name := range splits {
					stats, err := store.SplitStats(cmd.Context(), name)
					if err != nil {
						return err
					}
					rows = append(rows, []string{name, strconv.Itoa(stats.Count)})
				}
				fmt.Fprintln(out, renderTable([]string{"Split", "Clips"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newCatalogPruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune <split>",
		Short: "Delete every clip recorded under a split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				deleted, err := store.Prune(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d clips from split %q\n", deleted, args[0])
				return nil
			})
		},
	}
}
