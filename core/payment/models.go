package payment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yacinedz/siyaqa/core"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Amount        float64   `json:"amount"`
	Status        Status    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"` // UTC
}

// NewPayment contains information needed to record a payment.
type NewPayment struct {
	CourseID string  `json:"course_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Status   string  `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.CourseID = core.CleanString(np.CourseID)
	if np.Status == "" {
		np.Status = string(StatusPending)
	}
	return validate.Struct(np)
}

type QueryFilter struct {
	CourseID  string `query:"course_id"`
	StudentID string `query:"student_id"`
	Status    string `query:"status"`
}
