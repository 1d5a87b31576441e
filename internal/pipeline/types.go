package pipeline

// Transaction represents one raw transaction row after type coercion.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
}

// EnrichedTransaction is a Transaction plus the fields derived during the
// transform stage. It is created once and never mutated afterwards.
type EnrichedTransaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
	AmountUSD string  `json:"amount_usd"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	DayOfWeek string  `json:"day_of_week"`
}

// Summary holds the aggregate statistics computed over the whole batch.
type Summary struct {
	TotalTransactions int           `json:"total_transactions"`
	TotalAmount       float64       `json:"total_amount"`
	AverageAmount     float64       `json:"average_amount"`
	TopSenders        OrderedCounts `json:"top_senders"`
	TopRecipients     OrderedCounts `json:"top_recipients"`
}

// Output is the document written by the load stage.
type Output struct {
	Summary      *Summary              `json:"summary"`
	Transactions []EnrichedTransaction `json:"transactions"`
}
