// Package kernel provides the primitives shared by the tendering domain model:
// the UUID value object and the exact decimal money and quantity helpers.
//
// Money and quantities are github.com/shopspring/decimal values. Prices with
// tax are always derived from the price without tax and the tax percentage,
// never from a previously derived value.
package kernel
