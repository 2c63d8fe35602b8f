package database

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// OpenAndMigrate opens the sqlite database at dbPath and applies any pending
// embedded migrations.
func OpenAndMigrate(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// Ensure parent directory exists for file-backed DBs.
	if looksLikeFilePath(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func sqliteDSN(dbPath string) string {
	// _busy_timeout reduces spurious SQLITE_BUSY when the journal is written
	// from concurrent requests.
	if strings.HasPrefix(dbPath, "file:") || dbPath == ":memory:" {
		return dbPath
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
}

func looksLikeFilePath(p string) bool {
	return p != ":memory:" && !strings.HasPrefix(p, "file:")
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := loadAppliedVersions(db)
	if err != nil {
		return err
	}

	migs, err := listMigrationFiles(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	for _, m := range migs {
		if applied[m] {
			continue
		}
		body, err := fs.ReadFile(migrationsFS, "migrations/"+m)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", m, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := execSQLScript(tx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", m, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", m, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", m, err)
		}
	}

	return nil
}

func loadAppliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		out[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migration versions: %w", err)
	}
	return out, nil
}

func listMigrationFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// execSQLScript splits the script on ';' and executes each statement. The
// embedded schema files keep comments on their own lines so nothing smarter
// is needed here.
func execSQLScript(tx *sql.Tx, script string) error {
	var stmts []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		stmts = append(stmts, line)
	}
	for _, p := range strings.Split(strings.Join(stmts, "\n"), ";") {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
