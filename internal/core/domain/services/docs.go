// Package services provides domain services of the manufacturing order system
// that work across the Order aggregate and the calling actor.
//
// The package includes:
//   - PricingEngine: manufacturer costs plus margin configuration to displayed prices
//   - ETAEstimator: production and shipping parameters to a delivery date
//   - AccessPolicy: which actor may see or act on which order
//
// Pricing and ETA are pure and recomputed on every read; nothing here is
// persisted.
package services
