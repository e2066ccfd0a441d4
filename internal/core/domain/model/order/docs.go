// Package order contains the Order aggregate: the unit of work representing
// one customer's T-shirt request from intake through fulfillment.
//
// The aggregate owns three records that only its methods may change:
//   - the lifecycle status, driven by a state machine with separate
//     pipeline-driven and admin-driven transition rules,
//   - the phase log, an append-only timestamped audit trail of every
//     pipeline step and admin action,
//   - the result record, holding the artifacts produced by a pipeline run.
//
// Orders can only be created through NewOrder (validating customer data
// before anything is persisted) or reconstructed from storage through
// RestoreOrder.
package order
