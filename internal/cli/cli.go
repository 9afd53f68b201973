// Package cli is the accountkeeper command line: a cobra command tree over
// account.Service. Every run opens the store once and closes it on exit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iudanet/accountkeeper/internal/account"
	"github.com/iudanet/accountkeeper/internal/config"
	"github.com/iudanet/accountkeeper/internal/iocli"
	"github.com/iudanet/accountkeeper/internal/logger"
	"github.com/iudanet/accountkeeper/internal/storage"
	"github.com/iudanet/accountkeeper/internal/storage/boltdb"
	"github.com/iudanet/accountkeeper/internal/storage/sqlite"
)

// skipStore помечает команды, которым не нужна база
const skipStore = "skip-store"

var (
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrPasswordsNotIdentical = errors.New("passwords are not identical")
	ErrPasswordNotNew        = errors.New("new password equals the current one")
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type globalFlags struct {
	configPath string
	dbPath     string
	driver     string
	logLevel   string
	logFormat  string
}

// storeOpener opens the account store for driver and path
type storeOpener func(ctx context.Context, driver, path string) (storage.AccountStore, error)

type Cli struct {
	io      iocli.IO
	open    storeOpener
	logOut  io.Writer
	store   storage.AccountStore
	service *account.Service
	logger  *slog.Logger
	cfg     *config.Config
	build   BuildInfo
	flags   globalFlags
	dbPath  string
}

func New(ioc iocli.IO, build BuildInfo) *Cli {
	return &Cli{
		io:     ioc,
		open:   openStore,
		logOut: os.Stderr,
		build:  build,
	}
}

// Execute runs the command tree with args and closes the store afterwards
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

// RootCommand builds the command tree
func (c *Cli) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "accountkeeper",
		Short:             "Local account store with salted SHA-512 password hashes",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "path to YAML config file")
	pf.StringVar(&c.flags.dbPath, "db", "", "path to database file (default: user config dir)")
	pf.StringVar(&c.flags.driver, "driver", "", "storage driver: sqlite or bolt")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&c.flags.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		c.initCommand(),
		c.listCommand(),
		c.countCommand(),
		c.createCommand(),
		c.loginCommand(),
		c.resetCommand(),
		c.deleteCommand(),
		c.versionCommand(),
	)

	return root
}

// setup загружает конфиг, создает логгер и открывает хранилище
func (c *Cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}

	// флаги имеют приоритет над файлом и окружением
	if c.flags.dbPath != "" {
		cfg.Storage.Path = c.flags.dbPath
	}
	if c.flags.driver != "" {
		cfg.Storage.Driver = c.flags.driver
	}
	if c.flags.logLevel != "" {
		cfg.Log.Level = c.flags.logLevel
	}
	if c.flags.logFormat != "" {
		cfg.Log.Format = c.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	log, err := logger.New(c.logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	c.logger = log

	path := cfg.DatabasePath()
	c.dbPath = path

	store, err := c.open(cmd.Context(), cfg.Storage.Driver, path)
	if err != nil {
		return err
	}
	c.store = store
	c.logger.Debug("store opened", "driver", cfg.Storage.Driver, "path", path)

	c.service = account.NewService(store, c.logger)

	return nil
}

func (c *Cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// openStore creates the parent directory (0700) and opens the selected backend
func openStore(ctx context.Context, driver, path string) (storage.AccountStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %w", storage.ErrStorageUnavailable, err)
		}
	}

	switch driver {
	case config.DriverBolt:
		return boltdb.New(ctx, path)
	case config.DriverSQLite, "":
		return sqlite.New(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// readArgOrPrompt returns args[0] when given, otherwise asks for it
func (c *Cli) readArgOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return value, nil
}
