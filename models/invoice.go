package models

// InvoiceRequest carries the contact details handed to the crypto payment
// gateway when creating a hosted invoice. OrderID is the server-assigned
// booking token; BookingToken is the template token used in callback URLs.
type InvoiceRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerName  string  `json:"customerName"`
	BookingToken  string  `json:"bookingToken"`
}

// InvoiceResult is the gateway's answer: either a hosted invoice URL to
// redirect the customer to, or a gateway-reported error.
type InvoiceResult struct {
	Success    bool   `json:"success"`
	InvoiceURL string `json:"invoice_url,omitempty"`
	Error      string `json:"error,omitempty"`
}
