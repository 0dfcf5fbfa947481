package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tapas-dl/pkg/config"
	"tapas-dl/pkg/logging"
	"tapas-dl/pkg/sources"
	"tapas-dl/pkg/utils"
)

var infoCmd = &cobra.Command{
	Use:   "info [series url or id]",
	Short: "Show series metadata and episodes",
	Long:  "Fetch series metadata from tapas.io and display the episode list in a formatted table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		cobra.CheckErr(err)

		if cmd.Flags().Changed("cookies") {
			cfg.Cookies, _ = cmd.Flags().GetString("cookies")
		}
		if cmd.Flags().Changed("page-size") {
			cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
		}

		logger := logging.New(verbose)

		client, err := utils.NewHTTPClient(cfg.Cookies)
		cobra.CheckErr(err)

		source := sources.NewTapas(client, cfg.PageSize, logger)

		series, err := source.GetSeries(source.ResolveSeriesID(args[0]))
		cobra.CheckErr(err)

		// Create table columns
		columns := []table.Column{
			{Title: "#", Width: 6},
			{Title: "ID", Width: 10},
			{Title: "Title", Width: 44},
			{Title: "Access", Width: 8},
		}

		rows := []table.Row{}
		accessible := 0
		for _, episode := range series.Episodes {
			access := "locked"
			if episode.Accessible {
				access = "free"
				accessible++
			}

			rows = append(rows, table.Row{
				fmt.Sprintf("%d", episode.Index),
				fmt.Sprintf("%d", episode.ID),
				truncateString(episode.Title, 42),
				access,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 %s by %s (id %s)\n\n", series.Title, series.Author, series.ID)
		fmt.Println(t.View())
		fmt.Printf("\n%d episodes, %d accessible\n", len(series.Episodes), accessible)
	},
}

func init() {
	infoCmd.Flags().StringP("cookies", "c", "", "Netscape cookies.txt with a tapas.io session")
	infoCmd.Flags().Int("page-size", 0, "Episodes per metadata page")
}
