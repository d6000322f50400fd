// Package services provides domain services that work across the tender,
// quotation and award aggregates.
//
// The package includes:
//   - AwardAggregator: builds an Award from resolved lines and classifies it as Total or Partial
//   - TenderStatusDeriver: derives a tender's status from the award states of its quotation lines
//
// Both services are stateless and safe for concurrent use.
package services
