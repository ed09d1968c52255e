package export

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/creditlens/internal/export/migrations"
	"github.com/ppiankov/creditlens/internal/model"
)

const migrationTable = "schema_migrations"

// Store persists contribution snapshots in SQLite
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite store at path and applies migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot with the given map in one transaction
func (s *Store) SaveSnapshot(ctx context.Context, order *model.GameOrder, developers model.ContributionMap) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"contributions", "developers", "games"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, g := range order.Games() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO games (slug, position, year, label, saga, color, x, y) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.Slug, i, g.Year, g.Label, boolToInt(g.Saga), g.Color, g.X, g.Y,
		)
		if err != nil {
			return fmt.Errorf("insert game %s: %w", g.Slug, err)
		}
	}

	for _, key := range developers.Keys() {
		dev := developers[key]
		if _, err := tx.ExecContext(ctx, `INSERT INTO developers (key, name) VALUES (?, ?)`, dev.Key, dev.Name); err != nil {
			return fmt.Errorf("insert developer %s: %w", dev.Key, err)
		}
		for _, c := range dev.Contributions {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO contributions (developer_key, game_slug, role) VALUES (?, ?, ?)`,
				dev.Key, c.Game, string(c.Role),
			)
			if err != nil {
				return fmt.Errorf("insert contribution %s/%s: %w", dev.Key, c.Game, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the stored snapshot back, validated like a JSON artifact
func (s *Store) LoadSnapshot(ctx context.Context) (*model.GameOrder, model.ContributionMap, error) {
	snap := &Snapshot{Version: SnapshotVersion}

	rows, err := s.db.QueryContext(ctx, `SELECT slug, year, label, saga, color, x, y FROM games ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query games: %w", err)
	}
	for rows.Next() {
		var g model.Game
		var saga int
		if err := rows.Scan(&g.Slug, &g.Year, &g.Label, &saga, &g.Color, &g.X, &g.Y); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan game: %w", err)
		}
		g.Saga = saga != 0
		snap.Games = append(snap.Games, g)
	}
	if err := closeRows(rows); err != nil {
		return nil, nil, fmt.Errorf("read games: %w", err)
	}

	byKey := make(map[string]*SnapshotDeveloper)
	rows, err = s.db.QueryContext(ctx, `SELECT key, name FROM developers`)
	if err != nil {
		return nil, nil, fmt.Errorf("query developers: %w", err)
	}
	for rows.Next() {
		var d SnapshotDeveloper
		if err := rows.Scan(&d.Key, &d.Name); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan developer: %w", err)
		}
		d.Contributions = []SnapshotContribution{}
		byKey[d.Key] = &d
	}
	if err := closeRows(rows); err != nil {
		return nil, nil, fmt.Errorf("read developers: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT c.developer_key, c.game_slug, c.role
		FROM contributions c JOIN games g ON g.slug = c.game_slug
		ORDER BY c.developer_key, g.position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query contributions: %w", err)
	}
	for rows.Next() {
		var key, game, role string
		if err := rows.Scan(&key, &game, &role); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan contribution: %w", err)
		}
		d, ok := byKey[key]
		if !ok {
			rows.Close()
			return nil, nil, fmt.Errorf("contribution for unknown developer %q", key)
		}
		d.Contributions = append(d.Contributions, SnapshotContribution{Game: game, Role: model.RoleCategory(role)})
	}
	if err := closeRows(rows); err != nil {
		return nil, nil, fmt.Errorf("read contributions: %w", err)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		snap.Developers = append(snap.Developers, *byKey[k])
	}

	return snap.Restore()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// applyMigrations executes each embedded .sql file at most once
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)`, migrationTable)
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var applied int
		err := db.QueryRow(fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE name = ?", migrationTable), file).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSection(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}

	return nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down"
func upSection(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	start := strings.Index(content, up)
	if start == -1 {
		return content
	}
	content = content[start+len(up):]
	if end := strings.Index(content, down); end != -1 {
		content = content[:end]
	}
	return content
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
