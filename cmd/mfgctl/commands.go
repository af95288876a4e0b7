package main

import (
	"context"
	"fmt"
	"strings"

	"mfgorders/cmd"
	"mfgorders/internal/adapters/out/postgres"
	"mfgorders/internal/adapters/out/postgres/configrepo"
	"mfgorders/internal/adapters/out/rediscache"
	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/services"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type actorFlags struct {
	id    string
	role  string
	email string
	party string
}

func (f *actorFlags) bind(c *cobra.Command) {
	c.Flags().StringVar(&f.id, "actor-id", "", "acting user id")
	c.Flags().StringVar(&f.role, "role", kernel.Admin.String(), "acting user role")
	c.Flags().StringVar(&f.email, "email", "", "acting user email")
	c.Flags().StringVar(&f.party, "party", "", "manufacturer or client id of the acting user")
	_ = c.MarkFlagRequired("actor-id")
}

func (f *actorFlags) actor() (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(f.id)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("--actor-id: %w", err)
	}
	role, err := kernel.ParseRole(strings.TrimSpace(f.role))
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("--role: %w", err)
	}
	party, err := kernel.OptionalUUIDFromString(strings.TrimSpace(f.party))
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("--party: %w", err)
	}
	return kernel.NewActor(id, role, f.email, party)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mfgctl",
		Short:         "Operate the manufacturing order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMarginsCmd())
	root.AddCommand(newTotalsCmd())
	root.AddCommand(newETACmd())
	root.AddCommand(newRelayCmd())

	return root
}

// withRoot opens the database described by the environment and runs fn with
// a composition root over it.
func withRoot(ctx context.Context, fn func(ctx context.Context, cfg cmd.Config, db *gorm.DB, app *cmd.CompositionRoot) error) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	app, err := cmd.NewCompositionRoot(cfg, db, zap.NewNop())
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, cfg, db, app)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			return withRoot(c.Context(), func(_ context.Context, _ cmd.Config, db *gorm.DB, _ *cmd.CompositionRoot) error {
				if err := postgres.Migrate(db); err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), "schema migrated")
				return nil
			})
		},
	}
}

func newMarginsCmd() *cobra.Command {
	margins := &cobra.Command{
		Use:   "margins",
		Short: "Show or change the margin configuration",
	}

	margins.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored margins",
		RunE: func(c *cobra.Command, _ []string) error {
			return withRoot(c.Context(), func(ctx context.Context, _ cmd.Config, db *gorm.DB, _ *cmd.CompositionRoot) error {
				cfg, found, err := configrepo.NewGormMarginConfigRepository(db).Load(ctx)
				if err != nil {
					return err
				}
				return renderMargins(c.OutOrStdout(), cfg, found)
			})
		},
	})

	var product, shipping string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store new margin percentages",
		RunE: func(c *cobra.Command, _ []string) error {
			productPct, err := decimal.NewFromString(product)
			if err != nil {
				return fmt.Errorf("--product: %w", err)
			}
			shippingPct, err := decimal.NewFromString(shipping)
			if err != nil {
				return fmt.Errorf("--shipping: %w", err)
			}
			if productPct.IsNegative() || shippingPct.IsNegative() {
				return fmt.Errorf("margins must not be negative")
			}
			cfg := services.MarginConfig{ProductMarginPct: productPct, ShippingMarginPct: shippingPct}

			return withRoot(c.Context(), func(ctx context.Context, conf cmd.Config, db *gorm.DB, _ *cmd.CompositionRoot) error {
				if err := configrepo.NewGormMarginConfigRepository(db).Save(ctx, cfg); err != nil {
					return err
				}
				if conf.RedisAddr != "" {
					client := goredis.NewClient(&goredis.Options{
						Addr:     conf.RedisAddr,
						Password: conf.RedisPassword,
						DB:       conf.RedisDB,
					})
					defer client.Close()
					cache := rediscache.NewMarginCache(client, rediscache.DefaultKey, conf.MarginCacheTTL)
					if err := cache.Delete(ctx); err != nil {
						return fmt.Errorf("margins stored, cache not cleared: %w", err)
					}
				}
				return renderMargins(c.OutOrStdout(), cfg, true)
			})
		},
	}
	set.Flags().StringVar(&product, "product", "", "product margin percentage")
	set.Flags().StringVar(&shipping, "shipping", "0", "shipping margin percentage")
	_ = set.MarkFlagRequired("product")
	margins.AddCommand(set)

	return margins
}

func newTotalsCmd() *cobra.Command {
	var flags actorFlags
	c := &cobra.Command{
		Use:   "totals <order-id>",
		Short: "Print the priced totals of an order as the given actor sees them",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			actor, err := flags.actor()
			if err != nil {
				return err
			}
			orderID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return fmt.Errorf("order id: %w", err)
			}
			query, err := queries.NewComputeTotalsQuery(actor, orderID)
			if err != nil {
				return err
			}
			return withRoot(c.Context(), func(ctx context.Context, _ cmd.Config, _ *gorm.DB, app *cmd.CompositionRoot) error {
				totals, err := app.CreateComputeTotalsQueryHandler().Handle(ctx, query)
				if err != nil {
					return err
				}
				return renderTotals(c.OutOrStdout(), totals)
			})
		},
	}
	flags.bind(c)
	return c
}

func newETACmd() *cobra.Command {
	var flags actorFlags
	c := &cobra.Command{
		Use:   "eta <product-id>",
		Short: "Print the estimated delivery date of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			actor, err := flags.actor()
			if err != nil {
				return err
			}
			productID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return fmt.Errorf("product id: %w", err)
			}
			query, err := queries.NewComputeETAQuery(actor, productID)
			if err != nil {
				return err
			}
			return withRoot(c.Context(), func(ctx context.Context, _ cmd.Config, _ *gorm.DB, app *cmd.CompositionRoot) error {
				eta, err := app.CreateComputeETAQueryHandler().Handle(ctx, query)
				if err != nil {
					return err
				}
				return renderETA(c.OutOrStdout(), eta)
			})
		},
	}
	flags.bind(c)
	return c
}

func newRelayCmd() *cobra.Command {
	var batch int
	c := &cobra.Command{
		Use:   "relay",
		Short: "Publish one batch of pending notifications",
		RunE: func(c *cobra.Command, _ []string) error {
			command, err := commands.NewRelayNotificationsCommand(batch)
			if err != nil {
				return err
			}
			return withRoot(c.Context(), func(ctx context.Context, _ cmd.Config, _ *gorm.DB, app *cmd.CompositionRoot) error {
				relayed, err := app.CreateRelayNotificationsCommandHandler().Handle(ctx, command)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "relayed %d notifications\n", relayed)
				return nil
			})
		},
	}
	c.Flags().IntVar(&batch, "batch", 100, "maximum number of notifications to publish")
	return c
}
