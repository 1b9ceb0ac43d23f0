package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clipset/internal/manifest"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Build and inspect dataset manifests",
	}

	manifestCmd.AddCommand(newManifestBuildCommand(ctx))
	manifestCmd.AddCommand(newManifestShowCommand(ctx))
	manifestCmd.AddCommand(newManifestClassesCommand(ctx))

	return manifestCmd
}

func newManifestBuildCommand(ctx *commandContext) *cobra.Command {
	var baseDir string
	var ext string
	var out string

	cmd := &cobra.Command{
		Use:   "build <meta.json>",
		Short: "Build a shuffled manifest from a metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger().With("component", "manifest")

			if strings.TrimSpace(baseDir) == "" {
				baseDir = cfg.Paths.DataDir
			}
			if strings.TrimSpace(ext) == "" {
				ext = cfg.Dataset.RecordExt
			}

			metaPath := args[0]
			m, err := manifest.Build(metaPath, baseDir, ext, ctx.rng())
			if err != nil {
				return err
			}

			if strings.TrimSpace(out) == "" {
				base := strings.TrimSuffix(filepath.Base(metaPath), filepath.Ext(metaPath))
				out = filepath.Join(cfg.Paths.MetaDir, base+".manifest.json")
			}
			if err := m.Save(out); err != nil {
				return err
			}

			logger.Info("manifest built", "entries", m.Len(), "output", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote manifest with %d entries to %s\n", m.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory prefix for entry paths (defaults to paths.data_dir)")
	cmd.Flags().StringVar(&ext, "ext", "", "File extension appended to video IDs (defaults to dataset.record_ext)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output manifest path")
	return cmd
}

func newManifestShowCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <manifest.json>",
		Short: "Render a manifest as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, m.Len())
			for i, path := range m.Paths {
				if limit > 0 && i >= limit {
					break
				}
				rows = append(rows, []string{strconv.Itoa(i), path, strconv.Itoa(int(m.Labels[i]))})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Path", "Label"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
			if limit > 0 && m.Len() > limit {
				fmt.Fprintf(out, "… %d more entries\n", m.Len()-limit)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to display (0 shows everything)")
	return cmd
}

func newManifestClassesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classes <meta.json>",
		Short: "Summarize the label distribution of a metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := manifest.ReadMeta(args[0])
			if err != nil {
				return err
			}

			titler := cases.Title(language.English)
			rows := make([][]string, 0)
			for _, cc := range manifest.Classes(entries) {
				name := cc.Name
				if name != "" {
					name = titler.String(name)
				}
				rows = append(rows, []string{strconv.Itoa(int(cc.Label)), name, strconv.Itoa(cc.Count)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Label", "Class", "Clips"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
			return nil
		},
	}
}
