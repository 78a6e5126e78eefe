package infra

import (
	"fmt"

	"minegocio/internal/config"
	"minegocio/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection for the configured driver and brings
// the schema up to date. sqlite is the default: the whole business fits in a
// single local file, postgres is for multi-terminal deployments.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormCfg)
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseDriver == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	} else {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates every table. All DDL goes through
// AutoMigrate so the same code path works on sqlite and postgres; model tags
// avoid engine-specific defaults (uuids come from BeforeCreate hooks).
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Producto{},
		&model.Variante{},
		&model.Cliente{},
		&model.Venta{},
		&model.VentaItem{},
		&model.CostoExtra{},
		&model.DeudaCliente{},
		&model.Abono{},
		&model.DeudaProveedor{},
		&model.PagoProveedor{},
		&model.Gasto{},
		&model.Contador{},
		&model.Usuario{},
	)
}
