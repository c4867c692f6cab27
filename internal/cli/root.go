package cli

import (
	"context"
	"fmt"

	"github.com/martijn/clientreg/internal/core/repository"
	"github.com/martijn/clientreg/internal/infrastructure/sqlstore"
	"github.com/martijn/clientreg/internal/logging"
	"github.com/martijn/clientreg/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clientreg",
	Short: "Client registry - manage clients and their phone numbers",
	Long: `clientreg keeps a registry of clients and the phone numbers linked to them.

It provides:
- A JSON REST API for listing, creating, updating and deleting clients
- Phone number management per client
- Command line access to the same registry`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file")
}

// initServices opens the store and builds the repositories
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlstore.New(sqlstore.Driver(cfg.DBDriver), cfg.DBDSN, sqlstore.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	logger.WithField("driver", cfg.DBDriver).Debug("Database ready")

	return &Services{
		DB:         db,
		ClientRepo: sqlstore.NewClientRepository(db),
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB         *sqlstore.DB
	ClientRepo repository.ClientRepository
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
