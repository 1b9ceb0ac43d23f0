package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"clipset/internal/record"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Pack and inspect serialized video records",
	}

	recordCmd.AddCommand(newRecordPackCommand(ctx))
	recordCmd.AddCommand(newRecordInspectCommand(ctx))

	return recordCmd
}

func newRecordPackCommand(ctx *commandContext) *cobra.Command {
	var label int64

	cmd := &cobra.Command{
		Use:   "pack <out-file> <frame.jpg>...",
		Short: "Pack encoded frames into a record container file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger().With("component", "record")

			frames := make([][]byte, 0, len(args)-1)
			for _, path := range args[1:] {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read frame %s: %w", path, err)
				}
				if _, _, err := image.Decode(bytes.NewReader(raw)); err != nil {
					return fmt.Errorf("frame %s is not a decodable image: %w", path, err)
				}
				frames = append(frames, raw)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create record file: %w", err)
			}
			w := record.NewWriter(f)
			rec := &record.Record{
				NumFrames: int64(len(frames)),
				Label:     label,
				Frames:    frames,
			}
			if err := w.Write(rec); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close record file: %w", err)
			}

			logger.Info("record packed", "file", args[0], "frames", len(frames), "label", label)
			fmt.Fprintf(cmd.OutOrStdout(), "Packed %d frames into %s\n", len(frames), args[0])
			return nil
		},
	}

	cmd.Flags().Int64Var(&label, "label", 0, "Class label stored in the record")
	return cmd
}

func newRecordInspectCommand(ctx *commandContext) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the records in a container file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger().With("component", "record")

			records, err := record.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("records read", "file", args[0], "count", len(records))

			rows := make([][]string, 0, len(records))
			for i, rec := range records {
				shape := "-"
				if decode {
					c, _, err := record.DecodeClip(rec, cfg.Dims())
					if err != nil {
						return fmt.Errorf("record %d: %w", i, err)
					}
					shape = fmt.Sprintf("%dx%s", c.FrameCount, c.Dims)
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					strconv.FormatInt(rec.NumFrames, 10),
					strconv.FormatInt(rec.Label, 10),
					shape,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Frames", "Label", "Decoded"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "Decode and normalize every frame, verifying the configured shape")
	return cmd
}
