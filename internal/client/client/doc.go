// Package client implements the HTTP client used by the filmlog CLI.
//
// HTTPClient keeps the session token returned by Login and attaches it to
// every protected request. When built with a signing secret it wraps request
// bodies as {"payload": "<signed token>"}, the form the server's Detokenize
// middleware unwraps.
package client
