// Package api defines the wire-format types for the vidfetch HTTP surface
// and the client the CLI uses to reach a running daemon.
//
// DTOs use camelCase JSON tags for JavaScript consumers. Error bodies share
// one shape across endpoints: an error message plus optional raw details.
package api
