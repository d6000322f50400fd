package quotation

import (
	"tendering/internal/core/domain/model/award"

	"github.com/shopspring/decimal"
)

// Decision is the resolution requested for a line. The set of implementations
// is closed: AwardFull, AwardPartial and Reject.
type Decision interface {
	isDecision()
}

// AwardFull awards the whole line quantity.
type AwardFull struct{}

// AwardPartial awards Quantity units of the line. A quantity equal to the line
// quantity is treated as AwardFull.
type AwardPartial struct {
	Quantity decimal.Decimal
}

// Reject records the line as lost to Competitor.
type Reject struct {
	Competitor Competitor
}

// Competitor is the winning bidder of a lost line. An empty TaxID is stored
// as award.DefaultCompetitorTaxID.
type Competitor struct {
	Name  string
	TaxID string
	Price decimal.Decimal
}

func (AwardFull) isDecision()    {}
func (AwardPartial) isDecision() {}
func (Reject) isDecision()       {}

// Resolution is the outcome of resolving one line: the new line state and
// the payload for the award aggregator. Exactly one of Awarded and NonAwarded
// is set.
type Resolution struct {
	State      AwardState
	Awarded    *award.AwardedItem
	NonAwarded *award.NonAwardedItem
}

// AwardedItems returns the awarded payload as a batch of zero or one item.
func (r Resolution) AwardedItems() []award.AwardedItem {
	if r.Awarded == nil {
		return nil
	}
	return []award.AwardedItem{*r.Awarded}
}

// NonAwardedItems returns the non-awarded payload as a batch of zero or one item.
func (r Resolution) NonAwardedItems() []award.NonAwardedItem {
	if r.NonAwarded == nil {
		return nil
	}
	return []award.NonAwardedItem{*r.NonAwarded}
}
