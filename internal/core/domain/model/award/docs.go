// Package award provides the Award (adjudication) record: an append-only fact
// stating which quotation lines were won, in which quantity, and which lines
// were lost to which competitor.
//
// Awards are built by the award aggregator domain service and never change
// after creation. Their totals cover awarded items only and apply the tax
// percentage of each item separately.
package award
