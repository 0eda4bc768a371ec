// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store mirrors fetched authority records into a SQLite database.
// The records table is rebuilt on every run; nothing is read back between
// runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gnd-harvest/pkg/types"
)

// Store manages the record database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			gnd_id TEXT,
			preferred_name TEXT,
			variant_names TEXT NOT NULL,
			date_of_birth TEXT,
			date_of_death TEXT,
			professions TEXT NOT NULL,
			places_of_birth TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_gnd_id ON records(gnd_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace discards any stored records and writes records in order, in a
// single transaction.
func (s *Store) Replace(ctx context.Context, records []types.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (position, gnd_id, preferred_name, variant_names, date_of_birth, date_of_death, professions, places_of_birth)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		variants, _ := json.Marshal(nonNil(rec.VariantNames))
		professions, _ := json.Marshal(nonNil(rec.Professions))
		places, _ := json.Marshal(nonNil(rec.PlacesOfBirth))
		_, err := stmt.ExecContext(ctx,
			i,
			nullableText(rec.GNDID),
			nullableText(rec.PreferredName),
			string(variants),
			fieldJSON(rec.DateOfBirth),
			fieldJSON(rec.DateOfDeath),
			string(professions),
			string(places),
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.GNDID, err)
		}
	}

	return tx.Commit()
}

// Records returns the stored records in fetch order.
func (s *Store) Records(ctx context.Context) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gnd_id, preferred_name, variant_names, date_of_birth, date_of_death, professions, places_of_birth
		 FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var (
			gndID, preferred         sql.NullString
			variants, professions    string
			places                   string
			dateOfBirth, dateOfDeath sql.NullString
			rec                      types.Record
		)
		if err := rows.Scan(&gndID, &preferred, &variants, &dateOfBirth, &dateOfDeath, &professions, &places); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.GNDID = textField(gndID)
		rec.PreferredName = textField(preferred)
		if err := json.Unmarshal([]byte(variants), &rec.VariantNames); err != nil {
			return nil, fmt.Errorf("decoding variant names: %w", err)
		}
		if err := json.Unmarshal([]byte(professions), &rec.Professions); err != nil {
			return nil, fmt.Errorf("decoding professions: %w", err)
		}
		if err := json.Unmarshal([]byte(places), &rec.PlacesOfBirth); err != nil {
			return nil, fmt.Errorf("decoding places of birth: %w", err)
		}
		if rec.DateOfBirth, err = parseField(dateOfBirth); err != nil {
			return nil, fmt.Errorf("decoding date of birth: %w", err)
		}
		if rec.DateOfDeath, err = parseField(dateOfDeath); err != nil {
			return nil, fmt.Errorf("decoding date of death: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nullableText(f types.Field) sql.NullString {
	if f.IsAbsent() {
		return sql.NullString{}
	}
	return sql.NullString{String: f.String(), Valid: true}
}

func textField(s sql.NullString) types.Field {
	if !s.Valid {
		return types.Field{}
	}
	return types.NewField(s.String)
}

// fieldJSON keeps the verbatim shape of a field that is not always a
// single string.
func fieldJSON(f types.Field) sql.NullString {
	if f.IsAbsent() {
		return sql.NullString{}
	}
	b, err := f.MarshalJSON()
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func parseField(s sql.NullString) (types.Field, error) {
	var f types.Field
	if !s.Valid {
		return f, nil
	}
	err := json.Unmarshal([]byte(s.String), &f)
	return f, err
}
