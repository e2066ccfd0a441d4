// Package kernel contains shared value objects used across the domain model.
// These are the building blocks that aggregates and commands rely on for
// identity and validation.
package kernel
