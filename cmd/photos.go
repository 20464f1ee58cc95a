package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/marsdash/internal/nasa"
	"github.com/ziadkadry99/marsdash/internal/progress"
)

var (
	photosSol      int
	photosDownload string
)

var photosCmd = &cobra.Command{
	Use:   "photos <rover>",
	Short: "List a rover's photos for one sol",
	Long:  `Queries the photo API directly and prints one line per photo. With --download, saves every image into the given directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sol := cfg.Dashboard.DefaultSol
		if cmd.Flags().Changed("sol") {
			sol = photosSol
		}

		client := newUpstreamClient(cfg)
		rover := args[0]

		photos, err := client.Photos(cmd.Context(), rover, sol)
		if err != nil {
			return fmt.Errorf("fetching photos: %w", err)
		}

		printPhotos(cmd.OutOrStdout(), rover, sol, photos)

		if photosDownload == "" || len(photos) == 0 {
			return nil
		}
		paths, err := client.SavePhotos(cmd.Context(), photos, photosDownload, progress.NewReporter())
		if err != nil {
			return fmt.Errorf("downloading photos: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d files to %s\n", len(paths), photosDownload)
		return nil
	},
}

func printPhotos(w io.Writer, rover string, sol int, photos []nasa.Photo) {
	if len(photos) == 0 {
		fmt.Fprintf(w, "No photos available for %s on sol %d.\n", rover, sol)
		return
	}

	info := photos[0].Rover
	fmt.Fprintf(w, "%s (launched %s, landed %s, %s): %d photos on sol %d\n",
		rover, info.LaunchDate, info.LandingDate, info.Status, len(photos), sol)
	for _, p := range photos {
		if verbose && p.Camera != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.EarthDate, p.Camera.Name, p.ImgSrc)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", p.EarthDate, p.ImgSrc)
	}
}

func init() {
	photosCmd.Flags().IntVar(&photosSol, "sol", 1000, "Martian sol to query (defaults to dashboard.default_sol)")
	photosCmd.Flags().StringVar(&photosDownload, "download", "", "directory to save the images into")
	rootCmd.AddCommand(photosCmd)
}
