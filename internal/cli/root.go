package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/prodcat/internal/catalog"
	"github.com/mark-chris/prodcat/internal/config"
	"github.com/mark-chris/prodcat/internal/keywords"
	"github.com/mark-chris/prodcat/internal/logger"
	"github.com/mark-chris/prodcat/internal/search"
	"github.com/mark-chris/prodcat/internal/storage"
	"github.com/mark-chris/prodcat/internal/storage/redis"
)

var (
	// Global flags
	configPath   string
	dataDir      string
	outputFormat string
	verbose      bool

	// Shared resources
	cfg       config.Config
	zlog      = zap.NewNop()
	store     storage.Store
	cat       *catalog.Catalog
	extractor *keywords.Extractor
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "prodcat",
	Short: "Product catalog CLI",
	Long: `prodcat - a product catalog with similarity search and keyword suggestions.

Products carry a code, a description, keyword tags and an optional image.
Search ranks products by token similarity, ignoring accents and case.

Examples:
  # Add a product
  prodcat add --code A1 --description "Plafon de embutir LED 12W branco" --keywords "plafon, led"

  # Search the catalog
  prodcat search plafon led

  # Suggest keywords for a description
  prodcat keywords "Plafon LED 12W Branco de Alumínio 30cm"

  # Start the MCP server
  prodcat serve --transport stdio`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return setup(commandContext(cmd))
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the CLI until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: ./prodcat.yaml or ~/.prodcat/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "",
		"Data directory for the file store (overrides storage.path)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json",
		"Output format: json or text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Human-readable verbose output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger, store, catalog and extractor
func setup(ctx context.Context) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.Storage.Path = dataDir
	}

	l, err := logger.NewLogger(loaded.Logging.Env, loaded.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	vocab := keywords.DefaultVocabulary()
	if loaded.Keywords.VocabularyFile != "" {
		vocab, err = keywords.LoadVocabulary(loaded.Keywords.VocabularyFile)
		if err != nil {
			return err
		}
	}

	s, err := openStore(ctx, loaded.Storage, l)
	if err != nil {
		return err
	}

	cfg = loaded
	zlog = l
	store = s
	cat = catalog.New(s, catalog.WithLogger(l))
	extractor = keywords.New(vocab, keywords.WithLogger(l))
	return nil
}

// teardown releases the store and flushes the logger
func teardown() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	_ = zlog.Sync()
	return err
}

// openStore builds the storage backend selected by the configuration
func openStore(ctx context.Context, sc config.StorageConfig, l *zap.Logger) (storage.Store, error) {
	switch sc.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStore(), nil
	case config.DriverRedis:
		rs, err := redis.NewStore(redis.Config{
			Addrs:     sc.Redis.Addrs,
			Username:  sc.Redis.Username,
			Password:  sc.Redis.Password,
			DB:        sc.Redis.DB,
			KeyPrefix: sc.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		timeout := time.Duration(sc.Redis.ReadinessTimeout) * time.Second
		if err := rs.WaitForReady(ctx, timeout); err != nil {
			_ = rs.Close()
			return nil, err
		}
		l.Debug("redis store ready", zap.Strings("addrs", sc.Redis.Addrs))
		return rs, nil
	default:
		fs, err := storage.NewFileStore(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		l.Debug("file store ready", zap.String("dir", fs.Dir()))
		return fs, nil
	}
}

// commandContext returns the command's context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// getFormat returns the output format based on flags
func getFormat() search.OutputFormat {
	if outputFormat == "text" || verbose {
		return search.FormatText
	}
	return search.FormatJSON
}

// notFound turns a catalog sentinel into a short CLI message
func notFound(err error, what, key string) error {
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrTagNotFound) {
		return fmt.Errorf("%s not found: %s", what, key)
	}
	return err
}
