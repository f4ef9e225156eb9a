package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/akoven/enslab/internal/ensemble"
	"github.com/akoven/enslab/internal/stats"
)

// Store persists evaluation runs: a sqlite index of run metadata plus one
// JSON artifact per run with the full result arrays.
type Store struct {
	db      *sql.DB
	baseDir string
}

type RunMeta struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Kernel      string        `json:"kernel"`
	Atoms       int           `json:"atoms"`
	Configs     int           `json:"configs"`
	Temperature float64       `json:"temperature"`
	Seed        int64         `json:"seed"`
	Summary     stats.Summary `json:"summary"`
}

// RunData holds the per-configuration arrays of a stored run.
type RunData struct {
	Energies []float64         `json:"energies"`
	Weights  []float64         `json:"weights"`
	Forces   [][]ensemble.Vec3 `json:"forces"`
}

func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseDir, "enslab.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, baseDir: baseDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		kernel TEXT NOT NULL,
		atoms INTEGER NOT NULL,
		configs INTEGER NOT NULL,
		temperature REAL NOT NULL,
		seed INTEGER NOT NULL,
		summary JSON NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun indexes the run and writes its result arrays next to the database.
func (s *Store) SaveRun(ctx context.Context, kernel string, seed int64, ens *ensemble.Ensemble) (RunMeta, error) {
	meta := RunMeta{
		ID:          fmt.Sprintf("run_%d", time.Now().UnixNano()),
		CreatedAt:   time.Now().UTC(),
		Kernel:      kernel,
		Atoms:       ens.NAtoms(),
		Configs:     ens.Size(),
		Temperature: ens.Temperature,
		Seed:        seed,
		Summary:     stats.Summarize(ens),
	}

	summaryJSON, err := json.Marshal(meta.Summary)
	if err != nil {
		return RunMeta{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, kernel, atoms, configs, temperature, seed, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, meta.ID, meta.CreatedAt.UnixNano(), meta.Kernel, meta.Atoms, meta.Configs, meta.Temperature, meta.Seed, summaryJSON)
	if err != nil {
		return RunMeta{}, fmt.Errorf("failed to index run: %w", err)
	}

	data := RunData{
		Energies: ens.Energies,
		Weights:  ens.Weights,
		Forces:   ens.Forces,
	}
	if err := s.writeArtifact(meta.ID, data); err != nil {
		return RunMeta{}, err
	}

	log.Debug().Str("run", meta.ID).Int("configs", meta.Configs).Msg("run saved")
	return meta, nil
}

func (s *Store) writeArtifact(id string, data RunData) error {
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, "results.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(data)
}

// List returns all runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, kernel, atoms, configs, temperature, seed, summary
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Get returns the metadata of a single run.
func (s *Store) Get(ctx context.Context, id string) (RunMeta, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, kernel, atoms, configs, temperature, seed, summary
		FROM runs WHERE id = ?
	`, id)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunMeta{}, fmt.Errorf("run %s not found", id)
	}
	return meta, err
}

// LoadData reads the result arrays of a stored run.
func (s *Store) LoadData(id string) (RunData, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "results.json"))
	if err != nil {
		return RunData{}, err
	}
	defer file.Close()

	var data RunData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return RunData{}, err
	}
	return data, nil
}

// Delete removes a run from the index and its artifact directory.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunMeta, error) {
	var (
		meta        RunMeta
		createdNano int64
		summaryJSON []byte
	)
	err := row.Scan(&meta.ID, &createdNano, &meta.Kernel, &meta.Atoms,
		&meta.Configs, &meta.Temperature, &meta.Seed, &summaryJSON)
	if err != nil {
		return RunMeta{}, err
	}
	meta.CreatedAt = time.Unix(0, createdNano).UTC()
	if err := json.Unmarshal(summaryJSON, &meta.Summary); err != nil {
		return RunMeta{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	return meta, nil
}
