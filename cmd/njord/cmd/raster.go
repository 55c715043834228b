package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njordgeo/njord/pkg/raster"
)

// rasterCmd represents the raster command
var rasterCmd = &cobra.Command{
	Use:   "raster <hex|path>",
	Short: "Decode a PostGIS raster payload",
	Long: `Decode a PostGIS raster payload: the 61-byte header, then each
band's pixel type. With --values the full sample grids are printed too.

Example:
  njord raster --file ocean.rast
  njord raster --values 0100000100...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := loadPayloadHex(cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		accelerated, _ := cmd.Flags().GetBool("accelerated")
		showValues, _ := cmd.Flags().GetBool("values")

		var opts []raster.Option
		if accelerated {
			opts = append(opts, raster.WithAccelerated())
		}
		rast, err := raster.NewDecoder(opts...).DecodeHex(data)
		if err != nil {
			fmt.Printf("Error decoding raster: %v\n", err)
			return
		}

		h := rast.Header
		order := "big"
		if h.Little {
			order = "little"
		}
		fmt.Printf("byte order: %s\n", order)
		fmt.Printf("version:    %d\n", h.Version)
		fmt.Printf("bands:      %d\n", h.NumBands)
		fmt.Printf("size:       %dx%d\n", h.Width, h.Height)
		fmt.Printf("scale:      %g, %g\n", h.ScaleX, h.ScaleY)
		fmt.Printf("origin:     %g, %g\n", h.IPX, h.IPY)
		fmt.Printf("skew:       %g, %g\n", h.SkewX, h.SkewY)
		fmt.Printf("srid:       %d\n", h.SRID)

		for i, b := range rast.Bands {
			fmt.Printf("band %d:     %s\n", i+1, b.PixelType)
			if showValues {
				for _, row := range b.Values {
					fmt.Printf("  %v\n", row)
				}
			}
		}
	},
}

func init() {
	rasterCmd.Flags().BoolP("file", "f", false, "Treat the argument as a binary file path")
	rasterCmd.Flags().Bool("values", false, "Print full band sample grids")
	rasterCmd.Flags().Bool("accelerated", false, "Use the bulk band decoder")
	rootCmd.AddCommand(rasterCmd)
}
