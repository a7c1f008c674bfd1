package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/report"
	"github.com/R3natoky/photoutm/scan"
	"github.com/R3natoky/photoutm/util/names"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [FOLDER]",
	Short: "Scan a photo folder and write a coordinate report",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("format", "f", "", "Output format: "+strings.Join(report.Formats, ", "))
	err := viper.BindPFlag(config.KeyOutputFormat, scanCmd.Flags().Lookup("format"))
	if err != nil {
		panic(err)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments")
	}

	folder := ""
	if len(args) == 1 {
		folder = strings.TrimSpace(args[0])
		if s, err := os.Stat(folder); err != nil || !s.IsDir() {
			return fmt.Errorf("path '%s' is not a directory", folder)
		}
	} else {
		folder = promptFolder()
	}

	format := strings.ToLower(strings.TrimSpace(viper.GetString(config.KeyOutputFormat)))
	if format == "" {
		format = promptFormat()
	}

	generator, err := report.ForFormat(format)
	if err != nil {
		return err
	}

	scanner := scan.New()
	scanner.OnFile = func(index, total int, name string) {
		fmt.Printf("\rProcessing %d/%d: %s", index+1, total, name)
	}

	records, summary, err := scanner.ScanFolder(folder)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", folder, err)
	}
	fmt.Println()

	printSummary(summary)

	if summary.FilesFound == 0 {
		fmt.Println("No image files found in the folder.")
		return nil
	}
	if len(records) == 0 {
		fmt.Println("No photo had usable coordinates, nothing to write.")
		return nil
	}

	base := names.Sanitize("coordenadas_utm_" + filepath.Base(folder) + "_ordenado")
	baseName := filepath.Join(folder, base)

	logger.Info("generating %s output", generator.Name())
	temps, err := generator.Generate(records, baseName)
	for _, tmp := range temps {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Debug("temp file %s not removed: %v", tmp, rmErr)
		}
	}
	if err != nil {
		return fmt.Errorf("generating %s output: %w", generator.Name(), err)
	}

	return nil
}

func printSummary(s scan.Summary) {
	fmt.Println("--- Summary ---")
	fmt.Printf("Files found:          %d\n", s.FilesFound)
	fmt.Printf("Processed:            %d\n", s.Processed)
	fmt.Printf("Read errors:          %d\n", s.ReadErrors)
	fmt.Printf("Without metadata:     %d\n", s.EmptyMetadata)
	fmt.Printf("Coordinates OK:       %d\n", s.CoordsOK)
	fmt.Printf("Coordinates missing:  %d\n", s.CoordsNOK)
	fmt.Printf("Projection errors:    %d\n", s.UTMErrors)
	fmt.Printf("Dates OK:             %d\n", s.DateOK)
	fmt.Printf("Dates missing:        %d\n", s.DateNOK)
	fmt.Printf("Descriptions:         %d\n", s.Descriptions)
	fmt.Printf("Custom names:         %d\n", s.CustomNames)
}

func promptFolder() string {
	folder := ""
	prompt := survey.Input{
		Message: "Photo folder",
	}
	err := survey.AskOne(
		&prompt,
		&folder,
		survey.WithValidator(survey.Required),
		survey.WithValidator(func(ans interface{}) error {
			p := strings.TrimSpace(ans.(string))
			if s, err := os.Stat(p); err != nil || !s.IsDir() {
				return fmt.Errorf("path '%s' is not a directory", p)
			}
			return nil
		}),
	)
	exitOnInterrupt(err)

	return strings.TrimSpace(folder)
}

func promptFormat() string {
	format := ""
	prompt := survey.Select{
		Message: "Output format",
		Options: report.Formats,
	}
	err := survey.AskOne(&prompt, &format)
	exitOnInterrupt(err)

	return format
}
