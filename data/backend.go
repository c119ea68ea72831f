package data

// WalletConnectRequest is the body of POST /auth/wallet-connect
type WalletConnectRequest struct {
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
	Message       string `json:"message"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// TokenResponse covers the auth endpoints, which are not consistent about
// the field the token travels in.
type TokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	AuthToken   string `json:"auth_token"`
}

// AnyToken returns the first populated token field, or an empty string
func (r *TokenResponse) AnyToken() string {
	if r.Token != "" {
		return r.Token
	}
	if r.AccessToken != "" {
		return r.AccessToken
	}

	return r.AuthToken
}

// CreateIntentRequest is the body of POST /payments/create-intent
type CreateIntentRequest struct {
	TicketCount int `json:"ticket_count"`
}

// PaymentIntent is the backend-tracked record anticipating the transfer
type PaymentIntent struct {
	RecipientAddress string `json:"recipient_address"`
	PaymentIntentID  string `json:"payment_intent_id"`
}

// VerifyPaymentRequest is the body of POST /payments/verify
type VerifyPaymentRequest struct {
	TransactionHash string `json:"transaction_hash"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// CreateTicketRequest is the body of POST /tickets
type CreateTicketRequest struct {
	Numbers         []int  `json:"numbers"`
	Powerball       int    `json:"powerball"`
	TransactionHash string `json:"transaction_hash"`
}

// CreateTicketResponse is the answer to POST /tickets
type CreateTicketResponse struct {
	TicketID string `json:"ticketId"`
}

// BackendTicket is one ticket as listed by GET /tickets/my
type BackendTicket struct {
	ID              string  `json:"id"`
	CreatedAt       string  `json:"created_at"`
	Numbers         []int   `json:"numbers"`
	Powerball       int     `json:"powerball"`
	Price           float64 `json:"price"`
	TransactionHash string  `json:"transaction_hash"`
}

// MyTicketsResponse is the answer to GET /tickets/my
type MyTicketsResponse struct {
	Tickets []*BackendTicket `json:"tickets"`
}

// ErrorResponse is the error body the backend attaches to non-success answers
type ErrorResponse struct {
	Message string `json:"message"`
}

// TransactionStatusResponse is the proxy's answer on the transaction status
// endpoint
type TransactionStatusResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}
