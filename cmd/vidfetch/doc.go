// Command vidfetch is the client CLI for the vidfetch daemon. It submits
// downloads, fetches metadata, triggers cleanup sweeps, and inspects
// configuration and daemon health over the HTTP API.
package main
