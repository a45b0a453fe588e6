package dto

const (
	MailKindCancellationProcessed = "cancellation_processed"
	MailKindPaymentReceipt        = "payment_receipt"
)

// MailJob is the payload queued on the mail outbox topic.
type MailJob struct {
	Kind    string `json:"kind"`
	ToEmail string `json:"to_email"`

	ClientName  string  `json:"client_name,omitempty"`
	RequestType string  `json:"request_type,omitempty"`
	Status      string  `json:"status,omitempty"`
	AdminNote   *string `json:"admin_note,omitempty"`

	PgOrderId   string `json:"pg_order_id,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	PointAmount int64  `json:"point_amount,omitempty"`
	NewBalance  int64  `json:"new_balance,omitempty"`
}
