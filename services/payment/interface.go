package payment

import (
	"context"

	"skybook/models"
)

// InvoiceClient creates hosted invoices on the crypto payment gateway.
// A transport-level failure returns an error; a gateway-declared failure
// returns a result with Success=false and the gateway's message.
type InvoiceClient interface {
	CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.InvoiceResult, error)
}
