// Package pipeline drives the fulfillment of an order through its four
// processing steps: design generation, packaging, upload, and customer
// notification. The Orchestrator executes the steps strictly in sequence and
// persists the order after every transition, so the stored status and phase
// log always reflect real progress. The RunLock guarantees at most one active
// run per order, and the Dispatcher schedules runs as background goroutines
// so API callers never wait on processing.
package pipeline
