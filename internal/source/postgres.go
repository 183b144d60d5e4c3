package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads every row of one table. Column order follows the
// table definition; every value is rendered as display text.
type PostgresSource struct {
	db    Querier
	table string
}

// NewPostgresSource creates a source over table. The table name may be
// schema-qualified ("catalog.modules").
func NewPostgresSource(db Querier, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

// Key implements core.Source.
func (s *PostgresSource) Key() string {
	return "postgres:" + s.table
}

// Query returns the SELECT statement issued by Load.
func (s *PostgresSource) Query() string {
	return "SELECT * FROM " + pgx.Identifier(strings.Split(s.table, ".")).Sanitize()
}

// Load implements core.Source.
func (s *PostgresSource) Load(ctx context.Context) (core.RawTable, error) {
	rows, err := s.db.Query(ctx, s.Query())
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(s.Key(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	raw := core.RawTable{
		Columns: make([]string, len(fields)),
		Origin:  s.Key(),
	}
	for i, fd := range fields {
		raw.Columns[i] = fd.Name
	}

	digest := sha256.New()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return core.RawTable{}, core.NewDataLoadError(s.Key(), err)
		}
		row := make(core.RawRow, len(values))
		for i, v := range values {
			cell := FormatCell(v)
			row[i] = core.TextCell(cell)
			digest.Write([]byte(cell))
			digest.Write([]byte{0})
		}
		raw.Rows = append(raw.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return core.RawTable{}, core.NewDataLoadError(s.Key(), err)
	}

	raw.Digest = hex.EncodeToString(digest.Sum(nil))
	return raw, nil
}

// FormatCell renders a decoded Postgres value as display text. NULL and
// invalid values become the empty string, which core treats as absent.
func FormatCell(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)

	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006-01-02")

	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String

	case pgtype.Bool:
		if !val.Valid {
			return ""
		}
		return strconv.FormatBool(val.Bool)

	case time.Time:
		if val.IsZero() {
			return ""
		}
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)

	case []byte:
		return string(val)

	case string:
		return val

	default:
		return fmt.Sprintf("%v", v)
	}
}

// OpenPool connects to dsn and verifies the connection.
func OpenPool(ctx context.Context, dsn string, maxConns int) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
