package response

type CreditResponse struct {
	Success bool   `json:"success"`
	Balance string `json:"balance"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
