package source

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// fakeRows serves fixed values through the pgx.Rows interface.
type fakeRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	err    error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Scan(...any) error                            { return errors.New("not supported") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_Load(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "型号"}, {Name: "speed"}, {Name: "notes"}},
		data: [][]any{
			{"M1", pgtype.Numeric{Int: big.NewInt(125), Exp: -1, Valid: true}, pgtype.Text{String: "ok", Valid: true}},
			{"M2", nil, pgtype.Text{}},
		},
	}}

	src := NewPostgresSource(q, "catalog.modules")
	assert.Equal(t, "postgres:catalog.modules", src.Key())

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "catalog"."modules"`, q.sql)
	assert.Equal(t, []string{"型号", "speed", "notes"}, raw.Columns)
	assert.Equal(t, []string{"M1", "12.5", "ok"}, cells(raw.Rows[0]))
	assert.Equal(t, []string{"M2", "<absent>", "<absent>"}, cells(raw.Rows[1]))
	assert.NotEmpty(t, raw.Digest)
}

func TestPostgresSource_QuotesIdentifiers(t *testing.T) {
	src := NewPostgresSource(nil, `modules"; DROP TABLE x; --`)
	assert.Equal(t, `SELECT * FROM "modules""; DROP TABLE x; --"`, src.Query())
}

func TestPostgresSource_Errors(t *testing.T) {
	var loadErr *core.DataLoadError

	_, err := NewPostgresSource(&fakeQuerier{err: errors.New("connection refused")}, "modules").Load(context.Background())
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "postgres:modules", loadErr.Origin)

	rows := &fakeRows{fields: []pgconn.FieldDescription{{Name: "model"}}, err: errors.New("broken pipe")}
	_, err = NewPostgresSource(&fakeQuerier{rows: rows}, "modules").Load(context.Background())
	assert.ErrorAs(t, err, &loadErr)
}

func TestFormatCell(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"int", int64(42), "42"},
		{"float", 3.5, "3.5"},
		{"bytes", []byte("raw"), "raw"},
		{"numeric integer", pgtype.Numeric{Int: big.NewInt(40), Valid: true}, "40"},
		{"numeric invalid", pgtype.Numeric{}, ""},
		{"bool", pgtype.Bool{Bool: true, Valid: true}, "true"},
		{"date", pgtype.Date{Time: day, Valid: true}, "2024-03-01"},
		{"midnight time", day, "2024-03-01"},
		{"timestamp", day.Add(90 * time.Minute), "2024-03-01T01:30:00Z"},
		{"zero time", time.Time{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.in))
		})
	}
}
