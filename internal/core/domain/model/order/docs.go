// Package order provides the Order aggregate of the manufacturing order
// service: the order itself, its products and item variants, the order-level
// sample and media attachments.
//
// The package includes:
//   - Order: the aggregate root owning the lifecycle and all nested records
//   - Status: the six-state order lifecycle (draft through completed)
//   - ProductStatus and Custodian: the two orthogonal fields of a product
//   - Decision: the pending/approved/rejected value used by items and the sample
//
// Key business rules:
//   - Structural edits happen only in draft
//   - Submission routes every product to the manufacturer and opens the sample
//     workflow when any product carries sample notes
//   - A product sent to the client returns to staff once approved
//   - Item decisions and the sample approval are decided once
//
// Role checks live in the services package; this package validates state only.
package order
