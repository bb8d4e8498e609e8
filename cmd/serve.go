package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/salesworks/salespipe/internal/api"
	"github.com/salesworks/salespipe/internal/logging"
	"github.com/salesworks/salespipe/internal/repository"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only API over persisted runs",
	RunE:  serveAPI,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func serveAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	router := api.NewRouter(repository.NewRunRepo(db), logging.Component(logger, "api"))
	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Str("db", cfg.DBPath).Msg("api listening")

	return http.ListenAndServe(addr, router)
}
