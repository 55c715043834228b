package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njordgeo/njord/pkg/element"
	"github.com/njordgeo/njord/pkg/ewkb"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <hex|path>",
	Short: "Inspect a WKB/EWKB geometry header",
	Long: `Inspect a WKB/EWKB geometry payload: byte order, geometry type
code, and the embedded SRID if the extended bit is set.

Example:
  njord inspect 0101000020e610000000000000000014400000000000804640
  njord inspect --file point.wkb`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := loadPayloadHex(cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		e, err := element.NewWKBHex(data, element.UnknownSRID)
		if err != nil {
			fmt.Printf("Error inspecting geometry: %v\n", err)
			return
		}
		hdr, err := ewkb.ReadHeader(e.Bytes())
		if err != nil {
			fmt.Printf("Error inspecting geometry: %v\n", err)
			return
		}

		order := "big"
		if hdr.Little {
			order = "little"
		}
		fmt.Printf("byte order: %s\n", order)
		fmt.Printf("type code:  %d\n", hdr.Type&^ewkb.SRIDFlag)
		fmt.Printf("extended:   %t\n", e.Extended())
		fmt.Printf("srid:       %d\n", e.SRID())
	},
}

func init() {
	inspectCmd.Flags().BoolP("file", "f", false, "Treat the argument as a binary file path")
	rootCmd.AddCommand(inspectCmd)
}
