package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/R3natoky/photoutm/update"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update WORKBOOK FOLDER",
	Short: "Write edited workbook fields back into the photos' metadata",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	workbook := strings.TrimSpace(args[0])
	folder := strings.TrimSpace(args[1])

	if s, err := os.Stat(workbook); err != nil || s.IsDir() {
		return fmt.Errorf("path '%s' is not a workbook file", workbook)
	}
	if s, err := os.Stat(folder); err != nil || !s.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", folder)
	}

	writer := update.ExiftoolWriter{}
	if !writer.Available() {
		return fmt.Errorf("exiftool not found in PATH; install it to use update")
	}

	skipConfirm, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	if !skipConfirm {
		isConfirmed := false

		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Rewrite metadata of photos in %s from %s", folder, workbook),
			Default: isConfirmed,
		}

		err := survey.AskOne(prompt, &isConfirmed)
		exitOnInterrupt(err)

		if !isConfirmed {
			os.Exit(0)
		}
	}

	summary, err := update.Run(workbook, folder, writer)
	if summary != nil {
		fmt.Println("--- Summary ---")
		fmt.Printf("Rows:                %d\n", summary.Rows)
		fmt.Printf("Updated:             %d\n", summary.Updated)
		fmt.Printf("Skipped (no data):   %d\n", summary.SkippedNoData)
		fmt.Printf("Skipped (no file):   %d\n", summary.SkippedNoFile)
		fmt.Printf("Errors:              %d\n", summary.Errors)
	}

	return err
}
