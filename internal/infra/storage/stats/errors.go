package stats

import "errors"

// ErrExecQuery возвращается при ошибке выполнения запроса статистики
var ErrExecQuery = errors.New("stats.repository: failed to execute query")
