// Package sqlxrepos provides PostgreSQL repositories built on sqlx.
package sqlxrepos

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// queryBuilder accumulates WHERE clauses with positional args.
type queryBuilder struct {
	clauses []string
	args    []interface{}
}

func (qb *queryBuilder) where(column, op string, arg interface{}) {
	qb.clauses = append(qb.clauses, column+" "+op+" $"+strconv.Itoa(len(qb.args)+1))
	qb.args = append(qb.args, arg)
}

// whereAny matches column against an array arg. Postgres requires the
// ANY operand parenthesized.
func (qb *queryBuilder) whereAny(column string, arg interface{}) {
	qb.clauses = append(qb.clauses, column+" = ANY($"+strconv.Itoa(len(qb.args)+1)+")")
	qb.args = append(qb.args, arg)
}

func (qb *queryBuilder) build(base string) (string, []interface{}) {
	if len(qb.clauses) == 0 {
		return base, nil
	}
	return base + " WHERE " + strings.Join(qb.clauses, " AND "), qb.args
}
