package request

type CreditRequest struct {
	UserID    int64  `json:"user_id"`
	RefundID  string `json:"refund_id"`
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}
