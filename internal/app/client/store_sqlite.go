package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// SQLiteStore is the durable implementation of Store. Records and their
// attachment blobs live in separate tables keyed by temp id so arbitrary
// sized binaries don't ride inside the fields JSON.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLiteStore(path string, log *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db, log: log.With("component", "sqlite_store")}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return store, nil
}

// initTables is additive only: new object stores may be added in later
// versions but existing ones are never disturbed.
func (s *SQLiteStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS pending_records (
			temp_id    TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			fields     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pending_attachments (
			temp_id TEXT NOT NULL,
			slot    TEXT NOT NULL,
			data    BLOB NOT NULL,
			PRIMARY KEY (temp_id, slot)
		);

		CREATE TABLE IF NOT EXISTS lookup_sets (
			name       TEXT PRIMARY KEY,
			items      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pending_kind_created
			ON pending_records(kind, created_at DESC);
	`)

	return err
}

func (s *SQLiteStore) Put(kind pending.Kind, fields map[string]any, attachments map[string][]byte) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown kind %q", kind)
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}

	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Timestamp plus random suffix; retry on the unlikely key collision.
	var tempID string
	for attempt := 0; ; attempt++ {
		tempID = newTempID(kind, now)
		_, err = tx.Exec(`
			INSERT INTO pending_records (temp_id, kind, created_at, fields)
			VALUES (?, ?, ?, ?)
		`, tempID, string(kind), now.UnixMilli(), string(fieldsJSON))
		if err == nil {
			break
		}
		if attempt >= 3 {
			return "", fmt.Errorf("insert pending record: %w", err)
		}
	}

	for slot, data := range attachments {
		if data == nil {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO pending_attachments (temp_id, slot, data)
			VALUES (?, ?, ?)
		`, tempID, slot, data); err != nil {
			return "", fmt.Errorf("insert attachment %q: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return tempID, nil
}

func newTempID(kind pending.Kind, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", kind, now.UnixMilli(), uuid.NewString()[:8])
}

func (s *SQLiteStore) ListAll(kind pending.Kind) ([]*pending.Record, error) {
	rows, err := s.db.Query(`
		SELECT temp_id, kind, created_at, fields
		FROM pending_records
		WHERE kind = ?
		ORDER BY created_at DESC, temp_id DESC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query pending records: %w", err)
	}
	defer rows.Close()

	records := make([]*pending.Record, 0)
	for rows.Next() {
		var (
			rec        pending.Record
			kindStr    string
			createdAt  int64
			fieldsJSON string
		)
		if err := rows.Scan(&rec.TempID, &kindStr, &createdAt, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scan pending record: %w", err)
		}
		rec.Kind = pending.Kind(kindStr)
		rec.CreatedAt = time.UnixMilli(createdAt)
		if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal fields of %s: %w", rec.TempID, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending records: %w", err)
	}

	for _, rec := range records {
		atts, err := s.loadAttachments(rec.TempID)
		if err != nil {
			return nil, err
		}
		rec.Attachments = atts
	}

	return records, nil
}

func (s *SQLiteStore) loadAttachments(tempID string) (map[string][]byte, error) {
	rows, err := s.db.Query(`
		SELECT slot, data FROM pending_attachments WHERE temp_id = ?
	`, tempID)
	if err != nil {
		return nil, fmt.Errorf("query attachments of %s: %w", tempID, err)
	}
	defer rows.Close()

	var atts map[string][]byte
	for rows.Next() {
		var (
			slot string
			data []byte
		)
		if err := rows.Scan(&slot, &data); err != nil {
			return nil, fmt.Errorf("scan attachment of %s: %w", tempID, err)
		}
		if atts == nil {
			atts = make(map[string][]byte)
		}
		atts[slot] = data
	}
	return atts, rows.Err()
}

func (s *SQLiteStore) Remove(kind pending.Kind, tempID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM pending_records WHERE kind = ? AND temp_id = ?
	`, string(kind), tempID); err != nil {
		return fmt.Errorf("delete pending record: %w", err)
	}
	if _, err := tx.Exec(`
		DELETE FROM pending_attachments WHERE temp_id = ?
	`, tempID); err != nil {
		return fmt.Errorf("delete attachments: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Clear(kind pending.Kind) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM pending_attachments WHERE temp_id IN
			(SELECT temp_id FROM pending_records WHERE kind = ?)
	`, string(kind)); err != nil {
		return fmt.Errorf("clear attachments: %w", err)
	}
	if _, err := tx.Exec(`
		DELETE FROM pending_records WHERE kind = ?
	`, string(kind)); err != nil {
		return fmt.Errorf("clear pending records: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) SaveLookupSet(name string, items json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO lookup_sets (name, items, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at
	`, name, string(items), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save lookup set %q: %w", name, err)
	}
	return nil
}

// GetLookupSet degrades to nil on any failure so an unreadable cache can
// never block the entry flow.
func (s *SQLiteStore) GetLookupSet(name string) json.RawMessage {
	var items string
	err := s.db.QueryRow(`SELECT items FROM lookup_sets WHERE name = ?`, name).Scan(&items)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("lookup set unreadable", "name", name, "error", err)
		}
		return nil
	}
	return json.RawMessage(items)
}

func (s *SQLiteStore) Durable() bool {
	return true
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
