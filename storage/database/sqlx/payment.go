package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/payment"
)

const paymentColumns = `id, course_id, amount, status, transaction_id, created_at`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) payment.Repository {
	return &paymentRepository{db: db}
}

func scanPayment(row sqlx.ColScanner) (payment.Payment, error) {
	var p payment.Payment
	var txnID sql.NullString
	err := row.Scan(&p.ID, &p.CourseID, &p.Amount, &p.Status, &txnID, &p.CreatedAt)
	if err != nil {
		return payment.Payment{}, err
	}
	p.TransactionID = txnID.String
	return p, nil
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	query := `
INSERT INTO payment (` + paymentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + paymentColumns
	row := repo.db.QueryRowxContext(ctx, query,
		p.ID, p.CourseID, p.Amount, p.Status, nullString(p.TransactionID), p.CreatedAt,
	)
	created, err := scanPayment(row)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "creating payment")
	}
	return created, nil
}

func (repo *paymentRepository) GetPaymentByID(ctx context.Context, id string) (payment.Payment, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+paymentColumns+` FROM payment WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return payment.Payment{}, payment.ErrNotFound
		}
		return payment.Payment{}, errors.Wrap(err, "getting payment by id")
	}
	return p, nil
}

func (repo *paymentRepository) FilterPayments(ctx context.Context, filter payment.QueryFilter) ([]payment.Payment, error) {
	var qb queryBuilder
	if filter.CourseID != "" {
		qb.where("course_id", "=", filter.CourseID)
	}
	if filter.Status != "" {
		qb.where("status", "=", filter.Status)
	}

	query, args := qb.build(`SELECT ` + paymentColumns + ` FROM payment`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering payments")
	}
	defer func() { _ = rows.Close() }()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering payments")
		}
		payments = append(payments, p)
	}
	return payments, errors.Wrap(rows.Err(), "filtering payments")
}

func (repo *paymentRepository) UpdatePaymentStatus(ctx context.Context, id string, status payment.Status) (payment.Payment, error) {
	row := repo.db.QueryRowxContext(ctx,
		`UPDATE payment SET status = $2 WHERE id = $1 RETURNING `+paymentColumns, id, status)
	p, err := scanPayment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return payment.Payment{}, payment.ErrNotFound
		}
		return payment.Payment{}, errors.Wrap(err, "updating payment status")
	}
	return p, nil
}
