package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/api"
	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/config"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/errs"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rpupo63/genai-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:           "portfolio-api",
	Short:         "Content API for the portfolio site",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and optionally seed an admin",
	RunE:  runMigrate,
}

var seedAdmin struct {
	username string
	email    string
	password string
}

func init() {
	migrateCmd.Flags().StringVar(&seedAdmin.username, "admin-user", "", "username of an admin account to create")
	migrateCmd.Flags().StringVar(&seedAdmin.email, "admin-email", "", "email of the admin account")
	migrateCmd.Flags().StringVar(&seedAdmin.password, "admin-password", "", "password of the admin account")
	migrateCmd.MarkFlagsRequiredTogether("admin-user", "admin-email", "admin-password")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

// setup loads configuration, configures the global logger and connects to
// the database.
func setup(ctx context.Context) (map[string]string, database.Database, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, database.Database{}, err
	}
	configureLogging(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, database.Database{}, err
	}
	return cfg, db, nil
}

func configureLogging(cfg map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.IsDevelopment(cfg) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	log.Info().Msg("Initializing app...")

	cfg, db, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if config.GetBool(cfg, "AUTO_MIGRATE", false) {
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	server, err := api.NewServer(cfg, db, services.NotifiersFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	errChannel := make(chan error, 2)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, db, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("schema up to date")

	if seedAdmin.username == "" {
		return nil
	}
	return createAdmin(cmd.Context(), resource.NewEngines(db).Users)
}

// createAdmin adds the admin account named on the command line. An account
// that already exists is left untouched.
func createAdmin(ctx context.Context, users *resource.UserEngine) error {
	email, err := resource.NormalizeEmail(seedAdmin.email)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(seedAdmin.password)
	if err != nil {
		return err
	}

	admin, err := users.Create(ctx, &models.User{
		Username:     strings.TrimSpace(seedAdmin.username),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
	if errs.IsConflict(err) {
		log.Warn().Str("username", seedAdmin.username).Msg("admin account already exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("userID", admin.ID.String()).Msg("admin account created")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
