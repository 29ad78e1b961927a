package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bloodconnect-api/internal/interfaces/http"
	"github.com/jhoicas/bloodconnect-api/pkg/config"
	"github.com/jhoicas/bloodconnect-api/pkg/logger"
)

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return serve(cmdContext(cmd), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// averageRating se serializa como número, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	c, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.close()

	if cfg.Admin.Bootstrap {
		if err := seedAdmin(ctx, c.authUC, cfg, log); err != nil {
			log.Warn().Err(err).Msg("no se pudo crear el administrador por defecto")
		}
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
		Log:         log.Zerolog(),
	}, c.deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			m, closeFn, err := migrator(cmdContext(cmd), dir)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := m.Up(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Printf("%d migraciones aplicadas\n", n)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Directorio de migraciones (vacío = MIGRATIONS_DIR o esquema embebido)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de cada migración",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			m, closeFn, err := migrator(cmdContext(cmd), dir)
			if err != nil {
				return err
			}
			defer closeFn()

			statuses, err := m.Status(cmdContext(cmd))
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pendiente"
				if s.Applied && s.AppliedAt != nil {
					state = "aplicada " + s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%s\t%s\n", s.Name, state)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Directorio de migraciones (vacío = MIGRATIONS_DIR o esquema embebido)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func migrator(parent context.Context, dir string) (*postgres.Migrator, func(), error) {
	cfg, _, err := setup()
	if err != nil {
		return nil, nil, err
	}
	pool, err := openPool(parent, cfg)
	if err != nil {
		return nil, nil, err
	}
	if dir == "" {
		dir = cfg.DB.MigrationsDir
	}
	var fsys fs.FS = postgres.Migrations()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return postgres.NewMigrator(pool, fsys), pool.Close, nil
}

func seedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea el administrador por defecto (ADMIN_EMAIL / ADMIN_PASSWORD) si no existe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			c, err := build(cmdContext(cmd), cfg, log)
			if err != nil {
				return err
			}
			defer c.close()
			return seedAdmin(cmdContext(cmd), c.authUC, cfg, log)
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
