package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tapas-dl/pkg/integrations"
)

var epubCmd = &cobra.Command{
	Use:   "epub [series directory...]",
	Short: "Bundle downloaded series into EPUBs",
	Long:  "Compile the images and text files of downloaded series directories into EPUBs, one chapter per episode",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputDir, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")

		builder := integrations.NewEPubBuilder(outputDir)
		builder.Title = title
		builder.Author = author

		var exporter integrations.Exporter = builder
		for _, dir := range args {
			path, err := exporter.Export(dir)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("EPUB generation failed: %w", err))
			}
			fmt.Printf("📖 EPUB created: %s\n", path)
		}
	},
}

func init() {
	epubCmd.Flags().StringP("output", "o", ".", "Directory for the generated EPUB")
	epubCmd.Flags().String("title", "", "Book title (default: the series directory name)")
	epubCmd.Flags().String("author", "", "Book author")
}
