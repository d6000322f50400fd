package ports

import (
	"context"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
)

// AwardRepository stores awards. Awards are append-only: there is no Update.
type AwardRepository interface {
	Add(ctx context.Context, aggregate *award.Award) error
	Get(ctx context.Context, id kernel.UUID) (*award.Award, error)

	// ListByTender and ListByQuotation return awards ordered by adjudication
	// date and then by creation order.
	ListByTender(ctx context.Context, tenderID kernel.UUID) ([]*award.Award, error)
	ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*award.Award, error)
}
