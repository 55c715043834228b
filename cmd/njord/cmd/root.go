package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "njord",
	Short: "Njord - spatial payload codec",
	Long: `Njord inspects and rewrites spatial binary payloads: WKB/EWKB
geometry headers and PostGIS raster payloads, with SRID extraction and
injection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadPayloadHex resolves a command's payload argument to lowercase hex.
// With --file the argument names a binary file; otherwise it is hex text.
func loadPayloadHex(cmd *cobra.Command, arg string) (string, error) {
	fromFile, _ := cmd.Flags().GetBool("file")
	if fromFile {
		raw, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read payload file: %w", err)
		}
		return hex.EncodeToString(raw), nil
	}
	return strings.ToLower(strings.TrimSpace(arg)), nil
}
