package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Placeholders(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{name: "postgres", dialect: DialectPostgres, want: "SELECT id FROM parking_slots WHERE location = $1 FOR UPDATE"},
		{name: "sqlite", dialect: DialectSQLite, want: "SELECT id FROM parking_slots WHERE location = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.dialect)
			query, args, err := b.ForUpdate(
				b.Select("id").From("parking_slots").Where(squirrel.Eq{"location": "CityMall"}),
			).ToSql()

			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []interface{}{"CityMall"}, args)
		})
	}
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
