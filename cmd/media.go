package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopzone.GO/service/media"
)

var (
	thumbSrc string
	thumbDst string
	thumbOpt = media.DefaultOptions()
)

var mediaThumbnailCmd = &cobra.Command{
	Use:   "media:thumbnail",
	Short: "Write WebP thumbnails for every image in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := media.ThumbnailDir(thumbSrc, thumbDst, thumbOpt)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for name, ferr := range res.Failed {
			fmt.Fprintf(out, "  [fail] %s: %v\n", name, ferr)
		}
		fmt.Fprintf(out, "Wrote %d thumbnails to %s (%d failed)\n", res.Written, thumbDst, len(res.Failed))
		return nil
	},
}

func init() {
	f := mediaThumbnailCmd.Flags()
	f.StringVar(&thumbSrc, "src", "", "Source image directory (required)")
	f.StringVar(&thumbDst, "dst", "", "Output directory (required)")
	f.IntVar(&thumbOpt.Width, "width", thumbOpt.Width, "Thumbnail width")
	f.IntVar(&thumbOpt.Height, "height", thumbOpt.Height, "Thumbnail height")
	f.Float32Var(&thumbOpt.Quality, "quality", thumbOpt.Quality, "WebP quality 0-100")
	f.BoolVar(&thumbOpt.Crop, "crop", false, "Crop to fill instead of fitting inside")
	mediaThumbnailCmd.MarkFlagRequired("src")
	mediaThumbnailCmd.MarkFlagRequired("dst")
	rootCmd.AddCommand(mediaThumbnailCmd)
}
