package sqlxrepos

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func Test_queryBuilder(t *testing.T) {
	t.Run("no clauses", func(t *testing.T) {
		qb := new(queryBuilder)
		query, args := qb.build("SELECT * FROM app_user")
		assert.Equal(t, "SELECT * FROM app_user", query)
		assert.Empty(t, args)
	})

	t.Run("chained clauses", func(t *testing.T) {
		qb := new(queryBuilder)
		qb.where("state", "=", "Alger")
		qb.where("is_active", "=", true)
		query, args := qb.build("SELECT * FROM app_user")
		assert.Equal(t, "SELECT * FROM app_user WHERE state = $1 AND is_active = $2", query)
		assert.Equal(t, []interface{}{"Alger", true}, args)
	})

	t.Run("array membership", func(t *testing.T) {
		qb := new(queryBuilder)
		qb.whereAny("course_id", pq.Array([]string{"c1", "c2"}))
		qb.where("date", ">=", "2026-01-01")
		query, _ := qb.build("SELECT * FROM schedule")
		assert.Equal(t, "SELECT * FROM schedule WHERE course_id = ANY($1) AND date >= $2", query)
	})
}
