package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipset/internal/transform"
	"clipset/internal/videoio"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "Read and probe video files",
	}

	videoCmd.AddCommand(newVideoProbeCommand(ctx))
	videoCmd.AddCommand(newVideoReadCommand(ctx))
	videoCmd.AddCommand(newVideoExtractCommand(ctx))

	return videoCmd
}

func newVideoProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Print a video file's reported stream properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := videoio.Probe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frames: %d\n", info.FrameCount)
			fmt.Fprintf(out, "fps: %.3f\n", info.FPS)
			fmt.Fprintf(out, "size: %dx%d\n", info.Height, info.Width)
			return nil
		},
	}
}

func newVideoReadCommand(ctx *commandContext) *cobra.Command {
	var label int
	var centered bool

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a video and run it through the preparation pipeline",
		Long: "Read a video file, normalize it, sample the configured number of frames,\n" +
			"and apply the configured crop, reporting the resulting tensor shape.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger().With("component", "video")

			result, err := videoio.ReadFile(args[0], nil)
			if err != nil {
				return err
			}
			if result.Buffer == nil {
				return fmt.Errorf("no frames could be read from %s", args[0])
			}
			if result.Truncated {
				logger.Warn("video read ended early",
					"file", args[0],
					"read", result.Buffer.FrameCount,
					"expected", result.Expected)
			}

			c, err := transform.Normalize(result.Buffer)
			if err != nil {
				return err
			}

			sampled, onehot, err := transform.SampleFrames(c, label, cfg.Dataset.SampleFrames, cfg.Dataset.NumClasses)
			if err != nil {
				return err
			}

			th, tw := cfg.Dataset.CropHeight, cfg.Dataset.CropWidth
			if centered {
				sampled, err = transform.CenterCrop(sampled, th, tw)
			} else {
				sampled, err = transform.RandomCrop(ctx.rng(), sampled, th, tw)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "clip: %d frames of %s\n", sampled.FrameCount, sampled.Dims)
			fmt.Fprintf(out, "label: one-hot width %d\n", len(onehot))
			if result.Truncated {
				fmt.Fprintf(out, "warning: read %d of %d reported frames\n", result.Buffer.FrameCount, result.Expected)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&label, "label", 0, "Class label to encode for the clip")
	cmd.Flags().BoolVar(&centered, "center", false, "Use the deterministic center crop instead of random crop")
	return cmd
}

func newVideoExtractCommand(ctx *commandContext) *cobra.Command {
	var fps int
	var height int
	var width int

	cmd := &cobra.Command{
		Use:   "extract <file> <out-dir>",
		Short: "Extract frames from a video to JPEG files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger().With("component", "video")

			var size *videoio.Size
			if height > 0 || width > 0 {
				size = &videoio.Size{Height: height, Width: width}
			}

			written, err := videoio.ExtractFrames(args[0], args[1], fps, size)
			if err != nil {
				return err
			}

			logger.Info("frames extracted", "file", args[0], "frames", written, "out", args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d frames to %s\n", written, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "Resample to this frame rate (0 keeps the source rate)")
	cmd.Flags().IntVar(&height, "height", 0, "Scale frames to this height")
	cmd.Flags().IntVar(&width, "width", 0, "Scale frames to this width")
	return cmd
}
