package cmd

import (
	"github.com/spf13/cobra"

	"github.com/R3natoky/photoutm/cmd/serve"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [FOLDER]",
	Short: "Scan a folder and serve the photos on an interactive map",
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "localhost:8080", "Address to listen on")
}
