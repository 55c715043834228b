package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/njordgeo/njord/pkg/api"
	"github.com/njordgeo/njord/pkg/config"
	"github.com/njordgeo/njord/pkg/logger"
	"github.com/njordgeo/njord/pkg/raster"
	"github.com/njordgeo/njord/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the njord inspection API server",
	Long: `Start the HTTP server exposing geometry and raster inspection
endpoints plus the payload vault. Configuration is read from --config, or
bootstrapped with a generated API key when the file does not exist.

Example:
  njord serve --config ./njord.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		var cfg *config.Config
		var err error
		if config.ConfigExists(configPath) {
			cfg, err = config.LoadConfig(configPath)
		} else {
			cfg, err = config.BootstrapConfig(configPath, "")
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log := logger.New(logger.Config{
			Level:     cfg.Logging.Level,
			Console:   cfg.Logging.Console,
			Component: "api",
		})

		vault, err := storage.Open(filepath.Join(cfg.DataDir, "vault"))
		if err != nil {
			return fmt.Errorf("failed to open vault: %w", err)
		}
		defer vault.Close()

		var opts []raster.Option
		if cfg.Decoder.Accelerated {
			opts = append(opts, raster.WithAccelerated())
		}
		decoder := raster.NewDecoder(opts...)

		return api.StartServer(vault, decoder, api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.APIKey,
		}, log)
	},
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "Path to the configuration file")
	rootCmd.AddCommand(serveCmd)
}
