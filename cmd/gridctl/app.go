package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/gridboard/internal/config"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/services"
	pkglogger "github.com/BradenHooton/gridboard/pkg/logger"
)

// app holds the seeded store and services shared by every subcommand.
// It is filled in by the root command's PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	users    *services.UserService
	products *services.ProductService
	now      func() time.Time
}

type rootOptions struct {
	seed     uint64
	users    int
	products int
	pageSize int
	verbose  bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Query, export and lay out the gridboard demo tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.Uint64Var(&opts.seed, "seed", 0, "dataset seed (default MOCK_SEED)")
	flags.IntVar(&opts.users, "users", 0, "number of generated users (default MOCK_USERS)")
	flags.IntVar(&opts.products, "products", 0, "number of generated products (default MOCK_PRODUCTS)")
	flags.IntVar(&opts.pageSize, "page-size", 0, "default page size (default DEFAULT_PAGE_SIZE)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newUsersCmd(a),
		newProductsCmd(a),
		newLayoutCmd(a),
	)
	return root
}

// init loads configuration, applies flag overrides and seeds a fresh store
func (a *app) init(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Mock.Seed = opts.seed
	}
	if flags.Changed("users") {
		if opts.users < 1 {
			return fmt.Errorf("--users must be positive (got %d)", opts.users)
		}
		cfg.Mock.Users = opts.users
	}
	if flags.Changed("products") {
		if opts.products < 0 {
			return fmt.Errorf("--products must not be negative (got %d)", opts.products)
		}
		cfg.Mock.Products = opts.products
	}
	if flags.Changed("page-size") {
		if opts.pageSize < 1 {
			return fmt.Errorf("--page-size must be positive (got %d)", opts.pageSize)
		}
		cfg.Table.DefaultPageSize = opts.pageSize
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.logger = pkglogger.New(cmd.ErrOrStderr(), "text", level)

	store := repositories.NewStore(repositories.NoLatency{})
	store.Replace(repositories.Seed(repositories.SeedConfig{
		Seed:     cfg.Mock.Seed,
		Users:    cfg.Mock.Users,
		Products: cfg.Mock.Products,
		Now:      a.now(),
	}))

	users, roles, products := store.Counts()
	a.logger.Debug("demo dataset seeded",
		slog.Uint64("seed", cfg.Mock.Seed),
		slog.Int("users", users),
		slog.Int("roles", roles),
		slog.Int("products", products),
	)

	audit := services.NewAuditService(pkglogger.NewAuditLogger(a.logger), a.logger)
	a.users = services.NewUserService(repositories.NewUserRepository(store), audit, a.logger, cfg.Table.DefaultPageSize)
	a.products = services.NewProductService(repositories.NewProductRepository(store), audit, a.logger, cfg.Table.DefaultPageSize)
	return nil
}
