// Package migrations holds the versioned MySQL schema. sqlite databases are
// kept in sync with GORM AutoMigrate instead.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"mixtape.GO/model/entity"
	catalogEntity "mixtape.GO/model/entity/catalog"
)

//go:embed *.sql
var files embed.FS

// Models are the tables owned by this service.
func Models() []any {
	return []any{&catalogEntity.Product{}, &entity.AdminToken{}, &entity.StorageItem{}}
}

// AutoMigrate creates or alters the tables through GORM.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Up applies pending migrations. steps <= 0 means all of them.
func Up(db *gorm.DB, steps int) error {
	if db.Dialector.Name() != "mysql" {
		return AutoMigrate(db)
	}
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if steps > 0 {
		err = m.Steps(steps)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back steps migrations. Only MySQL keeps a version history.
func Down(db *gorm.DB, steps int) error {
	if db.Dialector.Name() != "mysql" {
		return fmt.Errorf("migrate down: not supported on %s", db.Dialector.Name())
	}
	if steps <= 0 {
		steps = 1
	}
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied MySQL schema version.
func Version(db *gorm.DB) (version uint, dirty bool, err error) {
	if db.Dialector.Name() != "mysql" {
		return 0, false, nil
	}
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func newMigrate(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	drv, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "mysql", drv)
}
