// Package quotation provides the Quotation aggregate: a priced response to a
// tender, composed of lines that are later resolved one by one.
//
// The package includes:
//   - Quotation: the aggregate root and its Open -> Finalized lifecycle
//   - Line: one priced product entry with its own award sub-state
//   - AwardState: the resolution state of a line
//   - Decision: the closed set of resolutions (AwardFull, AwardPartial, Reject)
//
// Key business rules:
//   - Lines may be added, edited or removed only while the quotation is Open
//   - Finalizing requires at least one line and cannot be undone
//   - Lines may be resolved only while the quotation is Finalized, and only once
//   - A price with tax is always recomputed from the base price and tax percentage
package quotation
