package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njordgeo/njord/pkg/ewkb"
)

// stripCmd represents the strip command
var stripCmd = &cobra.Command{
	Use:   "strip <hex|path>",
	Short: "Remove the embedded SRID from an EWKB payload",
	Long: `Clear the SRID bit in the geometry type word and drop the 4 SRID
bytes, printing the plain WKB payload as hex. Payloads without an embedded
SRID pass through unchanged.

Example:
  njord strip 0101000020e610000000000000000014400000000000804640`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := loadPayloadHex(cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		out, err := ewkb.StripSRIDHex(data)
		if err != nil {
			fmt.Printf("Error stripping SRID: %v\n", err)
			return
		}
		fmt.Println(out)
	},
}

func init() {
	stripCmd.Flags().BoolP("file", "f", false, "Treat the argument as a binary file path")
	rootCmd.AddCommand(stripCmd)
}
