package migrations

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestFiles_PairedUpDown(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		}
	}
	if len(ups) != 3 {
		t.Fatalf("up migrations = %d, want 3", len(ups))
	}
	for name := range ups {
		if !downs[name] {
			t.Errorf("%s has no down migration", name)
		}
	}
}

func TestUp_SqliteAutoMigrates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "m.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := Up(db, 0); err != nil {
		t.Fatalf("Up: %v", err)
	}
	for _, table := range []string{"products", "admin_token", "local_storage"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
	if v, dirty, err := Version(db); err != nil || v != 0 || dirty {
		t.Errorf("Version = %d %v %v, want 0 false nil", v, dirty, err)
	}
	if err := Down(db, 1); err == nil {
		t.Error("Down on sqlite should fail")
	}
}
