package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/R3natoky/photoutm/metadata"
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose FILE [TAG-ID]",
	Short: "Dump a photo's raw metadata tags",
	Long: `Dump a photo's raw metadata tags. With a TAG-ID argument, only that
tag is shown and byte values are additionally run through the lenient
text decoders, one line per attempted encoding.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDiagnose,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	path := strings.TrimSpace(args[0])
	if s, err := os.Stat(path); err != nil || s.IsDir() {
		return fmt.Errorf("path '%s' is not a file", path)
	}

	onlyTag := -1
	if len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 0 || id > 0xFFFF {
			return fmt.Errorf("'%s' is not a tag id", args[1])
		}
		onlyTag = id
	}

	tbl, err := metadata.GoexifProvider{}.Open(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if tbl == nil {
		fmt.Println("No metadata found.")
		return nil
	}

	for _, id := range tbl.IDs() {
		if onlyTag >= 0 && int(id) != onlyTag {
			continue
		}
		v, _ := tbl.Get(id)
		printTag(metadata.TagName(id), id, v, onlyTag >= 0)
	}

	if gps, ok := tbl.Nested(metadata.TagGPSInfo); ok {
		fmt.Println("-- GPS --")
		for _, id := range gps.IDs() {
			if onlyTag >= 0 && int(id) != onlyTag {
				continue
			}
			v, _ := gps.Get(id)
			printTag(metadata.GPSTagName(id), id, v, onlyTag >= 0)
		}
	}

	return nil
}

func printTag(name string, id uint16, v metadata.Value, verbose bool) {
	fmt.Printf("%5d  %-28s %s\n", id, name, v.Display())

	if !verbose || v.Kind != metadata.KindBytes {
		return
	}
	if text, encoding, ok := metadata.DecodeAggressive(v.Bytes); ok {
		fmt.Printf("       decoded as %s: %q\n", encoding, text)
	} else {
		fmt.Println("       no decoder accepted the bytes")
	}
}
