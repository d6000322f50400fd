package pebblestore

import (
	"fmt"
	"time"

	"tendering/internal/core/domain/model/kernel"
)

var seqKey = []byte("meta/seq")

func tenderKey(id kernel.UUID) []byte {
	return []byte("tender/" + id.String())
}

func tenderOrderKey(seq uint64) []byte {
	return fmt.Appendf(nil, "idx/tender/%020d", seq)
}

func tenderOrderPrefix() []byte {
	return []byte("idx/tender/")
}

func quotationKey(id kernel.UUID) []byte {
	return []byte("quotation/" + id.String())
}

func quotationsByTenderKey(tenderID kernel.UUID, seq uint64) []byte {
	return fmt.Appendf(nil, "idx/quotation-by-tender/%s/%020d", tenderID, seq)
}

func quotationsByTenderPrefix(tenderID kernel.UUID) []byte {
	return []byte("idx/quotation-by-tender/" + tenderID.String() + "/")
}

// openQuotationKey holds the id of the single open quotation of a tender.
func openQuotationKey(tenderID kernel.UUID) []byte {
	return []byte("idx/open-quotation/" + tenderID.String())
}

func awardKey(id kernel.UUID) []byte {
	return []byte("award/" + id.String())
}

// awardOrderSuffix sorts by adjudication date and then by creation.
func awardOrderSuffix(adjudicationDate time.Time, seq uint64) string {
	return fmt.Sprintf("%020d/%020d", adjudicationDate.UTC().UnixNano(), seq)
}

func awardsByTenderKey(tenderID kernel.UUID, suffix string) []byte {
	return []byte("idx/award-by-tender/" + tenderID.String() + "/" + suffix)
}

func awardsByTenderPrefix(tenderID kernel.UUID) []byte {
	return []byte("idx/award-by-tender/" + tenderID.String() + "/")
}

func awardsByQuotationKey(quotationID kernel.UUID, suffix string) []byte {
	return []byte("idx/award-by-quotation/" + quotationID.String() + "/" + suffix)
}

func awardsByQuotationPrefix(quotationID kernel.UUID) []byte {
	return []byte("idx/award-by-quotation/" + quotationID.String() + "/")
}

func outboxKey(seq uint64) []byte {
	return fmt.Appendf(nil, "outbox/%020d", seq)
}

func outboxIDKey(id kernel.UUID) []byte {
	return []byte("idx/outbox-id/" + id.String())
}

func unpublishedKey(seq uint64) []byte {
	return fmt.Appendf(nil, "idx/outbox-unpublished/%020d", seq)
}

func unpublishedPrefix() []byte {
	return []byte("idx/outbox-unpublished/")
}

// prefixEnd returns the smallest key greater than every key with prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
