package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// Service provides raid snapshot persistence on top of a DB.
type Service struct {
	db *DB
}

// NewService creates a storage service.
func NewService(db *DB) *Service {
	return &Service{db: db}
}

// RaidInfo describes one stored raid snapshot.
type RaidInfo struct {
	Name       string    `json:"name"`
	Position   int       `json:"position"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// SaveCollection replaces the stored snapshot with the given collection
// in one transaction. Positions record the collection's chronological
// order at import time.
func (s *Service) SaveCollection(ctx context.Context, c *raids.Collection) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Snapshot semantics: the import replaces whatever was stored.
	if _, err := tx.ExecContext(ctx, `DELETE FROM raid_snapshots`); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	insertRaid, err := tx.PrepareContext(ctx,
		`INSERT INTO raid_snapshots (name, position) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare raid insert: %w", err)
	}
	defer insertRaid.Close()

	insertRow, err := tx.PrepareContext(ctx,
		`INSERT INTO raid_rows (raid_id, position, class, spec, parses) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer insertRow.Close()

	for pos, name := range c.Names() {
		t, err := c.Table(name)
		if err != nil {
			return err
		}
		res, err := insertRaid.ExecContext(ctx, name, pos)
		if err != nil {
			return fmt.Errorf("insert raid %q: %w", name, err)
		}
		raidID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("raid %q id: %w", name, err)
		}
		for i, row := range t.Rows {
			if _, err := insertRow.ExecContext(ctx, raidID, i, row.Class, row.Spec, row.Parses); err != nil {
				return fmt.Errorf("insert row %s/%s of %q: %w", row.Class, row.Spec, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadCollection reconstructs a collection from the stored snapshot,
// ordered by the given canonical raid order (stored raids outside the
// order are dropped, matching the CSV loader's behavior).
func (s *Service) LoadCollection(ctx context.Context, order []string) (*raids.Collection, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT s.name, r.class, r.spec, r.parses
		FROM raid_snapshots s
		JOIN raid_rows r ON r.raid_id = s.id
		ORDER BY s.position, r.position`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]*raids.Table)
	for rows.Next() {
		var (
			name string
			row  raids.Row
		)
		if err := rows.Scan(&name, &row.Class, &row.Spec, &row.Parses); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		t, ok := tables[name]
		if !ok {
			t = &raids.Table{Name: name}
			tables[name] = t
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return raids.NewCollection(order, tables), nil
}

// ListRaids returns the stored raids in import order.
func (s *Service) ListRaids(ctx context.Context) ([]RaidInfo, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT s.name, s.position, s.imported_at, COUNT(r.raid_id)
		FROM raid_snapshots s
		LEFT JOIN raid_rows r ON r.raid_id = s.id
		GROUP BY s.id
		ORDER BY s.position`)
	if err != nil {
		return nil, fmt.Errorf("list raids: %w", err)
	}
	defer rows.Close()

	var infos []RaidInfo
	for rows.Next() {
		var info RaidInfo
		if err := rows.Scan(&info.Name, &info.Position, &info.ImportedAt, &info.RowCount); err != nil {
			return nil, fmt.Errorf("scan raid info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read raid list: %w", err)
	}
	return infos, nil
}

// DeleteRaid removes one stored raid and its rows.
func (s *Service) DeleteRaid(ctx context.Context, name string) error {
	res, err := s.db.conn.ExecContext(ctx, `DELETE FROM raid_snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete raid %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete raid %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("raid %q: %w", name, raids.ErrRaidNotFound)
	}
	return nil
}
