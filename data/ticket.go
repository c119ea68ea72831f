package data

// TicketActivity is one entry in the local activity list, built client-side
// after a successful purchase or converted from the backend's ticket list.
type TicketActivity struct {
	ID    string
	Date  string
	Main  []int
	Stars []int
	Price float64
	TxSig string
}

// JackpotInfo is the read-only jackpot snapshot served by the backend
type JackpotInfo struct {
	Pot struct {
		ID               string  `json:"id"`
		CreatedAt        string  `json:"created_at"`
		LastUpdated      string  `json:"last_updated"`
		CurrentAmount    float64 `json:"current_amount"`
		TotalRevenue     float64 `json:"total_revenue"`
		TotalTicketsSold int64   `json:"total_tickets_sold"`
	} `json:"pot"`
}

// CountdownInfo is the read-only next-draw snapshot served by the backend
type CountdownInfo struct {
	Countdown struct {
		Formatted string `json:"formatted"`
	} `json:"countdown"`
	NextDraw struct {
		Day  string `json:"day"`
		Time string `json:"time"`
	} `json:"next_draw"`
}
