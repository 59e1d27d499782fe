package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL диалект хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect возвращает диалект по имени драйвера из конфигурации
func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case DialectPostgres:
		return DialectPostgres, nil
	case DialectSQLite:
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("psqlbuilder: unsupported dialect %q", driver)
	}
}

// Builder построитель запросов под конкретный диалект
type Builder struct {
	sb      squirrel.StatementBuilderType
	dialect Dialect
}

// New создает построитель для диалекта
func New(dialect Dialect) Builder {
	format := squirrel.PlaceholderFormat(squirrel.Dollar)
	if dialect == DialectSQLite {
		format = squirrel.Question
	}
	return Builder{
		sb:      squirrel.StatementBuilder.PlaceholderFormat(format),
		dialect: dialect,
	}
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// Dialect возвращает диалект построителя
func (b Builder) Dialect() Dialect {
	return b.dialect
}

// ForUpdate добавляет блокировку строк там, где диалект её поддерживает.
// SQLite блокирует всю базу на запись, поэтому запрос не меняется
func (b Builder) ForUpdate(query squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect != DialectPostgres {
		return query
	}
	return query.Suffix("FOR UPDATE")
}
