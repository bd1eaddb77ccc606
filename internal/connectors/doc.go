// Package connectors provides implementations of the Connector interface
// for trait registry fragment sources. Each connector knows how to fetch
// rustdoc registry fragments from a specific source type (filesystem,
// GitHub Pages, etc.).
//
// Connectors are registered with the ConnectorFactory at startup.
package connectors
