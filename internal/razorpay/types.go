package razorpay

// CreateOrderRequest запрос к Orders API на создание заказа.
// Amount указывается в минимальных единицах валюты (пайсах).
type CreateOrderRequest struct {
	Amount   int               `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order ответ Razorpay на создание заказа.
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
