// Package tender provides the Tender aggregate: a public call for bids on a
// set of requested products.
//
// The package includes:
//   - Tender: the aggregate root holding references, validity window and requested items
//   - RequestedItem: one requested product with its quantity, immutable after creation
//   - Status: the derived award status of the tender
//
// Key business rules:
//   - A tender must have a call reference, a requester and at least one requested item
//   - The deadline must be strictly after the start of the validity window
//   - The requested items never change after the tender is opened
//   - The status is never chosen by callers; it is derived from the award
//     state of the quotation lines by the domain services package
package tender
