package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/bloodconnect-api/internal/application/analytics"
	"github.com/jhoicas/bloodconnect-api/internal/application/auth"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/excel"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/lock"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/bloodconnect-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bloodconnect-api/internal/interfaces/http"
	"github.com/jhoicas/bloodconnect-api/pkg/config"
	"github.com/jhoicas/bloodconnect-api/pkg/logger"
)

// components dependencias construidas a partir de la configuración.
type components struct {
	deps    httpRouter.RouterDeps
	authUC  *auth.AuthUseCase
	closers []func()
}

func (c *components) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// storage abre el driver configurado y devuelve repositorios y runner de transacciones.
func storage(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Stores, ports.TxRunner, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return store.Stores(), store, func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return ports.Stores{}, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewStores(pool), postgres.NewTxRunner(pool, log.Zerolog()), pool.Close, nil
	default:
		return ports.Stores{}, nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}

// locker usa Redis si está configurado; si no, un lock local al proceso.
func locker(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.HospitalLocker, func(), error) {
	if !cfg.Redis.Enabled() {
		return lock.NewLocalLocker(), func() {}, nil
	}
	client := lock.NewRedisClient(cfg.Redis)
	if err := lock.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("lock de rating en redis")
	return lock.NewRedisLocker(client), func() { _ = client.Close() }, nil
}

func build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*components, error) {
	c := &components{}

	stores, tx, closeStore, err := storage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)

	lk, closeLock, err := locker(ctx, cfg, log)
	if err != nil {
		c.close()
		return nil, err
	}
	c.closers = append(c.closers, closeLock)

	patientUC := usecase.NewPatientUseCase(stores.Patients)
	donorUC := usecase.NewDonorUseCase(stores.Donors, excel.NewDonorExporter())
	hospitalUC := usecase.NewHospitalUseCase(stores.Hospitals, infrapdf.NewMarotoReportGenerator())
	reviewUC := usecase.NewReviewUseCase(stores.Reviews, stores.Patients, stores.Hospitals, lk)

	c.authUC = auth.NewAuthUseCase(tx, stores.Users, map[string]auth.ProfileHandler{
		entity.RolePatient:  patientUC,
		entity.RoleDonor:    donorUC,
		entity.RoleHospital: hospitalUC,
		entity.RoleAdmin:    usecase.NewAdminProfileUseCase(stores.Admins),
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())

	c.deps = httpRouter.RouterDeps{
		AuthUC:      c.authUC,
		PatientUC:   patientUC,
		DonorUC:     donorUC,
		HospitalUC:  hospitalUC,
		ReviewUC:    reviewUC,
		UserUC:      usecase.NewUserUseCase(stores.Users, tx, reviewUC),
		DashboardUC: appanalytics.NewAdminDashboardUseCase(stores.Patients, stores.Donors, stores.Hospitals, stores.Reviews),
		Users:       stores.Users,
		JWTSecret:   cfg.JWT.Secret,
	}
	return c, nil
}

// seedAdmin crea el admin por defecto y registra el resultado.
func seedAdmin(ctx context.Context, authUC *auth.AuthUseCase, cfg *config.Config, log *logger.Logger) error {
	created, err := authUC.EnsureDefaultAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador por defecto creado")
	} else {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador por defecto ya existe")
	}
	return nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, fmt.Errorf("las migraciones requieren STORAGE_DRIVER=postgres (actual: %s)", cfg.Storage.Driver)
	}
	return postgres.NewPool(ctx, cfg.DB)
}
