package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njordgeo/njord/pkg/ewkb"
)

// injectCmd represents the inject command
var injectCmd = &cobra.Command{
	Use:   "inject <hex|path>",
	Short: "Embed an SRID into a WKB payload",
	Long: `Set the SRID bit in the geometry type word and insert the 4-byte
SRID after it, printing the EWKB payload as hex. Payloads that already embed
an SRID pass through unchanged.

Example:
  njord inject --srid 4326 010100000000000000000014400000000000804640`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := loadPayloadHex(cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		srid, _ := cmd.Flags().GetInt("srid")

		out, err := ewkb.InjectSRIDHex(data, srid)
		if err != nil {
			fmt.Printf("Error injecting SRID: %v\n", err)
			return
		}
		fmt.Println(out)
	},
}

func init() {
	injectCmd.Flags().BoolP("file", "f", false, "Treat the argument as a binary file path")
	injectCmd.Flags().Int("srid", 4326, "SRID to embed")
	rootCmd.AddCommand(injectCmd)
}
