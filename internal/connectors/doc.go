// Package connectors provides implementations of the MailSource
// interface. Each connector knows how to fetch messages from a
// specific mail API; the graph connector talks to Microsoft Graph.
package connectors
