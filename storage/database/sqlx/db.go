// Package sqlxrepos provides PostgreSQL-backed repositories.
package sqlxrepos

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// queryBuilder accumulates WHERE conditions with `?` placeholders; build
// rebinds them for the target driver.
type queryBuilder struct {
	base  string
	conds []string
	args  []interface{}
}

func newQueryBuilder(base string) *queryBuilder {
	return &queryBuilder{base: base}
}

func (qb *queryBuilder) where(cond string, args ...interface{}) {
	qb.conds = append(qb.conds, cond)
	qb.args = append(qb.args, args...)
}

func (qb *queryBuilder) build(db *sqlx.DB, suffix string) (string, []interface{}) {
	query := qb.base
	if len(qb.conds) > 0 {
		query += " WHERE " + strings.Join(qb.conds, " AND ")
	}
	if suffix != "" {
		query += " " + suffix
	}
	return db.Rebind(query), qb.args
}
