package ports

import (
	"context"

	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
)

// QuotationRenderer exports a quotation as a document. Rendering is a pure
// read and never changes the quotation.
type QuotationRenderer interface {
	Render(ctx context.Context, t *tender.Tender, q *quotation.Quotation) ([]byte, error)
	ContentType() string
}
