package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"VolProfiler/internal/model"
)

const table = "daily_volatility"

// SQLiteRecorder persists daily volatility records to a SQLite database.
//
// The default policy mirrors the legacy system: every SaveDaily drops and
// recreates the table, so the store holds at most one day at a time and
// concurrent runs race last-writer-wins. KeepHistory switches to an upsert
// keyed by day, retaining prior days.
type SQLiteRecorder struct {
	db          *sql.DB
	keepHistory bool
	mu          sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database.
func NewSQLiteRecorder(dbPath string, keepHistory bool) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	// Create the table up front in both modes so reads before the first
	// save report "not found" rather than a missing table. The replace
	// policy still drops and recreates it on every save.
	r := &SQLiteRecorder{db: db, keepHistory: keepHistory}
	if _, err := db.Exec(createTableSQL()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s (keep_history=%v)", dbPath, keepHistory)
	return r, nil
}

func createTableSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + table + " (day TEXT PRIMARY KEY")
	for i := 0; i < model.SlotCount; i++ {
		fmt.Fprintf(&b, ", v%d REAL", i)
	}
	b.WriteString(", computed_at TIMESTAMP NOT NULL)")
	return b.String()
}

// SaveDaily writes one record and stamps its ComputedAt. Under the replace
// policy it first drops and recreates the table.
func (r *SQLiteRecorder) SaveDaily(rec *model.DailyVolatilityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if !r.keepHistory {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
		if _, err := tx.Exec(createTableSQL()); err != nil {
			return fmt.Errorf("recreate table: %w", err)
		}
	}

	now := time.Now().UTC()

	var b strings.Builder
	b.WriteString("INSERT INTO " + table + " (day")
	for i := 0; i < model.SlotCount; i++ {
		fmt.Fprintf(&b, ", v%d", i)
	}
	b.WriteString(", computed_at) VALUES (?")
	b.WriteString(strings.Repeat(", ?", model.SlotCount+1))
	b.WriteString(")")
	if r.keepHistory {
		b.WriteString(" ON CONFLICT(day) DO UPDATE SET computed_at=excluded.computed_at")
		for i := 0; i < model.SlotCount; i++ {
			fmt.Fprintf(&b, ", v%d=excluded.v%d", i, i)
		}
	}

	args := make([]any, 0, model.SlotCount+2)
	args = append(args, rec.Day)
	for i := 0; i < model.SlotCount; i++ {
		args = append(args, rec.Slots[i])
	}
	args = append(args, now.Format(time.RFC3339))

	if _, err := tx.Exec(b.String(), args...); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	rec.ComputedAt = now
	return nil
}

// LoadDaily reads one day's record back. NULL slot columns come back as NaN
// so the report layer can mark them not-available.
func (r *SQLiteRecorder) LoadDaily(day string) (*model.DailyVolatilityRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cols strings.Builder
	cols.WriteString("day")
	for i := 0; i < model.SlotCount; i++ {
		fmt.Fprintf(&cols, ", v%d", i)
	}
	cols.WriteString(", computed_at")

	row := r.db.QueryRow("SELECT "+cols.String()+" FROM "+table+" WHERE day = ?", day)

	rec := &model.DailyVolatilityRecord{}
	slots := make([]sql.NullFloat64, model.SlotCount)
	var computedAt string

	dest := make([]any, 0, model.SlotCount+2)
	dest = append(dest, &rec.Day)
	for i := range slots {
		dest = append(dest, &slots[i])
	}
	dest = append(dest, &computedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	for i, v := range slots {
		if v.Valid {
			rec.Slots[i] = v.Float64
		} else {
			rec.Slots[i] = math.NaN()
		}
	}
	if ts, err := time.Parse(time.RFC3339, computedAt); err == nil {
		rec.ComputedAt = ts
	}
	return rec, nil
}

// LatestDay returns the most recently computed day key.
func (r *SQLiteRecorder) LatestDay() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var day string
	err := r.db.QueryRow("SELECT day FROM " + table + " ORDER BY computed_at DESC, day DESC LIMIT 1").Scan(&day)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query latest day: %w", err)
	}
	return day, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
