// Package migrate rewrites UUIDs stored in MySQL BINARY(16) columns from one legacy
// layout to another, typically to Standard before switching readers to subtype 4.
package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Lzww0608/bsonuuid"
)

// ErrKeyNotInteger is returned by Run when the key column does not hold integers. Keyset
// paging binds the last key back into `WHERE key > ?`, which only orders reliably for integers.
var ErrKeyNotInteger = errors.New("migrate: key_column must be an integer column")

// Stats counts what a Run did.
type Stats struct {
	Scanned    int
	Converted  int
	Unchanged  int
	Invalid    int
	Conflicted int
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("scanned", s.Scanned).
		Int("converted", s.Converted).
		Int("unchanged", s.Unchanged).
		Int("invalid", s.Invalid).
		Int("conflicted", s.Conflicted)
}

// row is one (key, value) pair read from the table.
type row struct {
	key   interface{}
	value []byte
}

// update is a planned rewrite of one row.
type update struct {
	key      interface{}
	oldValue []byte
	newValue []byte
}

// Migrator re-encodes one column. It is not safe for concurrent Runs.
type Migrator struct {
	db     *sql.DB
	ownsDB bool
	cfg    Config
	from   bsonuuid.Representation
	to     bsonuuid.Representation
	logger zerolog.Logger
}

// New validates cfg and opens the MySQL database it names.
func New(cfg Config, logger zerolog.Logger) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dsn")
	}
	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "creating mysql connector")
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	m := newMigrator(db, cfg, logger)
	m.ownsDB = true
	return m, nil
}

// NewWithDB validates cfg and uses an already opened database. The caller keeps ownership of db.
func NewWithDB(db *sql.DB, cfg Config, logger zerolog.Logger) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newMigrator(db, cfg, logger), nil
}

func newMigrator(db *sql.DB, cfg Config, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:   db,
		cfg:  cfg,
		from: *cfg.From,
		to:   *cfg.To,
		logger: logger.With().
			Str("table", cfg.Table).
			Str("column", cfg.UUIDColumn).
			Stringer("from", *cfg.From).
			Stringer("to", *cfg.To).
			Logger(),
	}
}

// Close closes the database if New opened it.
func (m *Migrator) Close() error {
	if !m.ownsDB {
		return nil
	}
	return m.db.Close()
}

// Run walks the table in key order and rewrites every value that changes under the conversion.
// Each batch is updated in its own transaction; an error rolls back the current batch only.
func (m *Migrator) Run(ctx context.Context) (Stats, error) {
	var (
		stats   Stats
		lastKey interface{}
		first   = true
	)

	m.logger.Info().Int("batch_size", m.cfg.batchSize()).Bool("dry_run", m.cfg.DryRun).Msg("migration started")

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rows, err := m.fetch(ctx, first, lastKey)
		if err != nil {
			return stats, err
		}
		if len(rows) == 0 {
			break
		}
		first = false
		lastKey = rows[len(rows)-1].key

		updates, batch := m.plan(rows)
		if !m.cfg.DryRun && len(updates) > 0 {
			conflicted, err := m.apply(ctx, updates)
			if err != nil {
				return stats, err
			}
			batch.Converted -= conflicted
			batch.Conflicted += conflicted
		}
		stats.add(batch)

		m.logger.Debug().Object("batch", batch).Msg("batch done")

		if len(rows) < m.cfg.batchSize() {
			break
		}
	}

	m.logger.Info().Object("stats", stats).Msg("migration finished")
	return stats, nil
}

func (m *Migrator) selectQuery(first bool) string {
	c := m.cfg
	if first {
		return fmt.Sprintf("SELECT `%s`, `%s` FROM `%s` ORDER BY `%s` LIMIT ?",
			c.KeyColumn, c.UUIDColumn, c.Table, c.KeyColumn)
	}
	return fmt.Sprintf("SELECT `%s`, `%s` FROM `%s` WHERE `%s` > ? ORDER BY `%s` LIMIT ?",
		c.KeyColumn, c.UUIDColumn, c.Table, c.KeyColumn, c.KeyColumn)
}

func (m *Migrator) updateQuery() string {
	c := m.cfg
	return fmt.Sprintf("UPDATE `%s` SET `%s` = ? WHERE `%s` = ? AND `%s` = ?",
		c.Table, c.UUIDColumn, c.KeyColumn, c.UUIDColumn)
}

func (m *Migrator) fetch(ctx context.Context, first bool, lastKey interface{}) ([]row, error) {
	args := []interface{}{m.cfg.batchSize()}
	if !first {
		args = []interface{}{lastKey, m.cfg.batchSize()}
	}

	rs, err := m.db.QueryContext(ctx, m.selectQuery(first), args...)
	if err != nil {
		return nil, errors.Wrap(err, "selecting batch")
	}
	defer rs.Close()

	var rows []row
	for rs.Next() {
		var r row
		if err := rs.Scan(&r.key, &r.value); err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}
		switch r.key.(type) {
		case int64, uint64:
		default:
			return nil, errors.Wrapf(ErrKeyNotInteger, "column %s holds %T", m.cfg.KeyColumn, r.key)
		}
		rows = append(rows, r)
	}
	return rows, errors.Wrap(rs.Err(), "iterating batch")
}

// plan decides which rows need rewriting. Every row in the returned updates is counted as
// Converted; apply reclassifies rows that lost a race.
func (m *Migrator) plan(rows []row) ([]update, Stats) {
	var (
		updates []update
		stats   Stats
	)
	for _, r := range rows {
		stats.Scanned++

		converted, err := bsonuuid.Convert(r.value, m.from, m.to)
		if err != nil {
			stats.Invalid++
			m.logger.Warn().Err(err).Interface("key", r.key).Int("length", len(r.value)).Msg("skipping value")
			continue
		}
		if bytes.Equal(converted, r.value) {
			stats.Unchanged++
			continue
		}
		stats.Converted++
		updates = append(updates, update{key: r.key, oldValue: r.value, newValue: converted})
	}
	return updates, stats
}

// apply writes updates in one transaction and returns how many rows had changed underneath it.
func (m *Migrator) apply(ctx context.Context, updates []update) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, m.updateQuery())
	if err != nil {
		return 0, errors.Wrap(err, "preparing update")
	}
	defer stmt.Close()

	conflicted := 0
	for _, u := range updates {
		res, err := stmt.ExecContext(ctx, u.newValue, u.key, u.oldValue)
		if err != nil {
			return 0, errors.Wrapf(err, "updating key %v", u.key)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(err, "reading rows affected")
		}
		if n == 0 {
			conflicted++
			m.logger.Warn().Interface("key", u.key).Msg("value changed during migration, left as is")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing batch")
	}
	return conflicted, nil
}

func (s *Stats) add(o Stats) {
	s.Scanned += o.Scanned
	s.Converted += o.Converted
	s.Unchanged += o.Unchanged
	s.Invalid += o.Invalid
	s.Conflicted += o.Conflicted
}
