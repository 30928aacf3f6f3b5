package model

// Expense is a project cost split among participants. Amounts arrive in
// both currencies; which ones are shown is a display decision driven by
// the project's currency mode.
type Expense struct {
	ID              int64     `json:"id"`
	ProjectID       int64     `json:"project_id"`
	Description     string    `json:"description"`
	Date            *Date     `json:"date"`
	AmountUSD       float64   `json:"amount_usd"`
	AmountARS       float64   `json:"amount_ars"`
	ExchangeRate    float64   `json:"exchange_rate"`
	CategoryID      *int64    `json:"category_id"`
	ProviderID      *int64    `json:"provider_id"`
	RubroID         *int64    `json:"rubro_id"`
	InvoiceFilePath string    `json:"invoice_file_path"`
	Payments        []Payment `json:"payments"`
}

// HasInvoice reports whether an invoice file is attached.
func (e Expense) HasInvoice() bool {
	return e.InvoiceFilePath != ""
}

// PaidCount returns how many of the expense's payments classify as paid.
func (e Expense) PaidCount() int {
	n := 0
	for _, p := range e.Payments {
		if ClassifyPayment(p) == StatusPaid {
			n++
		}
	}
	return n
}
