// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Transforms an uploaded file into text
//   - NormaliserRegistry: Selects appropriate normaliser
//   - PostProcessorPipeline: Cleans text before extraction
//   - DocumentRenderer: Produces the final order form (PDF, text)
//   - ConfigStore: Application configuration
//   - HistoryStore: Records of generated order forms
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
