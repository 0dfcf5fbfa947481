package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tapas-dl/pkg/app"
	"tapas-dl/pkg/config"
	"tapas-dl/pkg/logging"
	"tapas-dl/pkg/services"
	"tapas-dl/pkg/sources"
	"tapas-dl/pkg/utils"
)

var getCmd = &cobra.Command{
	Use:   "get [series url, id or name...]",
	Short: "Download one or more series",
	Long: "Download every accessible episode of the given series. Comic episodes are saved " +
		"as numbered images, novel episodes as text files. A series directory that already " +
		"exists is skipped; use --force to re-enter it, overwrite prose and fill in missing images.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		cobra.CheckErr(err)

		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
		}
		if cmd.Flags().Changed("cookies") {
			cfg.Cookies, _ = cmd.Flags().GetString("cookies")
		}
		if cmd.Flags().Changed("page-size") {
			cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("restrict-characters") {
			cfg.RestrictCharacters, _ = cmd.Flags().GetBool("restrict-characters")
		}
		force, _ := cmd.Flags().GetBool("force")
		plain, _ := cmd.Flags().GetBool("plain")

		logger := logging.New(verbose)

		client, err := utils.NewHTTPClient(cfg.Cookies)
		cobra.CheckErr(err)

		source := sources.NewTapas(client, cfg.PageSize, logger)
		persister := services.NewPersister(cfg.OutputDir, cfg.RestrictCharacters, force, cfg.Workers, logger)
		downloader := services.NewDownloader(source, persister, logger)

		if plain {
			runPlain(downloader, args)
		} else {
			runWithUI(downloader, args)
		}

		fmt.Printf("✅ Saved %d series to %s\n", len(args), cfg.OutputDir)
	},
}

// runPlain prints one line per event, for logs and dumb terminals.
func runPlain(downloader *services.Downloader, args []string) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for progress := range downloader.GetProgressChannel() {
			switch progress.Status {
			case "fetching":
				fmt.Printf("  Episode %d/%d: %s\n", progress.EpisodeIndex, progress.TotalEpisodes, progress.EpisodeTitle)
			case "complete":
				fmt.Printf("✅ %s\n", seriesLabel(progress))
			case "skipped":
				fmt.Printf("📚 %s already downloaded\n", seriesLabel(progress))
			case "error":
				fmt.Printf("❌ %s: %v\n", seriesLabel(progress), progress.Error)
			}
		}
	}()

	err := downloader.Run(args)
	downloader.Close()
	<-done
	cobra.CheckErr(err)
}

// runWithUI renders the live progress view while the download runs in
// the background. Quitting the view does not abort the download.
func runWithUI(downloader *services.Downloader, args []string) {
	runErr := make(chan error, 1)
	go func() {
		runErr <- downloader.Run(args)
		downloader.Close()
	}()

	if err := app.NewApp().Run(downloader.GetProgressChannel()); err != nil {
		cobra.CheckErr(err)
	}
	cobra.CheckErr(<-runErr)
}

func seriesLabel(progress services.DownloadProgress) string {
	if progress.SeriesTitle != "" {
		return progress.SeriesTitle
	}
	return progress.SeriesID
}

func init() {
	getCmd.Flags().StringP("output-dir", "o", "", "Directory to download into")
	getCmd.Flags().BoolP("force", "f", false, "Re-enter an existing series directory")
	getCmd.Flags().StringP("cookies", "c", "", "Netscape cookies.txt with a tapas.io session")
	getCmd.Flags().Int("page-size", 0, "Episodes per metadata page")
	getCmd.Flags().Int("workers", 0, "Parallel image downloads per episode")
	getCmd.Flags().BoolP("restrict-characters", "r", false, "Restrict file names to portable characters")
	getCmd.Flags().Bool("plain", false, "Line-based progress output instead of the live view")
}
