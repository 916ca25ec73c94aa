// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - RuleStore: Lists and creates filter rules (twitter adapter)
//   - EventStream: Opens the filtered stream (twitter adapter)
//   - SinkOpener / Sink: Appends tweet rows (sheets, sqlite, memory adapters)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
