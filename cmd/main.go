// file: cmd/main.go

package main

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ha1tch/imdflex/cmd/convert"
	"github.com/ha1tch/imdflex/cmd/extract"
	"github.com/ha1tch/imdflex/cmd/info"
	"github.com/ha1tch/imdflex/cmd/list"
)

var (
	verbose  bool
	debug    bool
	noVerify bool

	convertOpts = convert.DefaultConvertOptions()
	infoOpts    = info.DefaultInfoOptions()
	listOpts    = list.DefaultListOptions()
	extractOpts = extract.DefaultExtractOptions()
)

var rootCmd = &cobra.Command{
	Use:   "imdflex",
	Short: "Convert ImageDisk (IMD) floppy images to flat FLEX disk images",
	Long: `Decodes ImageDisk (.IMD) floppy images and writes the linear 256-byte
sector image used by FLEX emulators. Images may be zstd-compressed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case debug:
			log.SetLevel(log.DebugLevel)
		case verbose:
			log.SetLevel(log.InfoLevel)
		default:
			log.SetLevel(log.WarnLevel)
		}
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert IMAGE.IMD OUTPUT.DSK",
	Short: "Writes the linearized FLEX image of an IMD file",
	Long: `Decodes the whole IMD image, derives the FLEX geometry from tracks 0 and 1,
and writes track 0, its zero padding, then tracks 1-39 in logical sector order.
No output is created if the image is malformed or incomplete.`,
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		convertOpts.Verify = !noVerify
		return convert.Convert(args[0], args[1], convertOpts)
	},
}

var infoCmd = &cobra.Command{
	Use:                   "info IMAGE.IMD",
	Short:                 "Displays image, geometry and FLEX volume information",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		infoOpts.Verbose = infoOpts.Verbose || verbose
		return info.Info(args[0], infoOpts)
	},
}

var listCmd = &cobra.Command{
	Use:                   "list IMAGE.IMD",
	Short:                 "Lists the decoded sectors and their status",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list.List(args[0], listOpts)
	},
}

var extractCmd = &cobra.Command{
	Use:                   "extract IMAGE.IMD TRACK SECTOR",
	Short:                 "Copies a single sector to a file or stdout",
	Args:                  cobra.ExactArgs(3),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid track %q: %w", args[1], err)
		}
		sector, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid sector %q: %w", args[2], err)
		}
		return extract.Extract(args[0], track, sector, extractOpts)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every track and sector")

	convertCmd.Flags().BoolVarP(&convertOpts.Force, "force", "f", convertOpts.Force, "Overwrite an existing output file")
	convertCmd.Flags().BoolVarP(&convertOpts.Quiet, "quiet", "q", convertOpts.Quiet, "Suppress non-error output")
	convertCmd.Flags().IntVarP(&convertOpts.Tracks, "tracks", "t", convertOpts.Tracks, "Number of tracks to write")
	convertCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip the size check of the written image")

	infoCmd.Flags().BoolVar(&infoOpts.JSON, "json", infoOpts.JSON, "Output in JSON format")
	infoCmd.Flags().BoolVar(&infoOpts.Validate, "validate", infoOpts.Validate, "Check the FLEX system information record")
	infoCmd.Flags().BoolVarP(&infoOpts.Quiet, "quiet", "q", infoOpts.Quiet, "Only print warnings")

	listCmd.Flags().BoolVar(&listOpts.JSON, "json", listOpts.JSON, "Output in JSON format")
	listCmd.Flags().StringVarP(&listOpts.Sort, "sort", "s", listOpts.Sort, "Sort order: track, type or decode")
	listCmd.Flags().BoolVarP(&listOpts.Reverse, "reverse", "r", listOpts.Reverse, "Reverse sort order")
	listCmd.Flags().IntVarP(&listOpts.Track, "track", "t", listOpts.Track, "Only list this track")
	listCmd.Flags().BoolVar(&listOpts.Flagged, "flagged", listOpts.Flagged, "Only list deleted, error or unavailable sectors")
	listCmd.Flags().BoolVarP(&listOpts.Quiet, "quiet", "q", listOpts.Quiet, "Omit header and summary")

	extractCmd.Flags().StringVarP(&extractOpts.Output, "output", "o", extractOpts.Output, "Output file, default stdout")
	extractCmd.Flags().BoolVar(&extractOpts.Hex, "hex", extractOpts.Hex, "Write a hex dump")
	extractCmd.Flags().BoolVarP(&extractOpts.Linear, "linear", "l", extractOpts.Linear, "Read from the linearized FLEX image")
	extractCmd.Flags().BoolVar(&extractOpts.Overwrite, "overwrite", extractOpts.Overwrite, "Overwrite an existing output file")
	extractCmd.Flags().BoolVarP(&extractOpts.Quiet, "quiet", "q", extractOpts.Quiet, "Suppress non-error output")

	rootCmd.AddCommand(convertCmd, infoCmd, listCmd, extractCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
