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
//   - Connector: Fetches registry fragments from a source
//   - ConnectorFactory: Creates connectors from configuration
//   - Decoder: Parses one fragment flavor into implementor records
//   - DecoderRegistry: Selects the appropriate decoder for a fragment
//   - ImplementorStore: Implementor record persistence
//   - SourceStore: Source configuration persistence
//   - ScanStateStore: Scan progress persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or decoder package
package driven
