// Package httpapi exposes the matching engine over HTTP.
//
// It is a driving adapter: handlers translate HTTP requests into calls on
// the driving ports and map domain sentinel errors onto status codes. All
// request and response bodies are JSON except the multipart CV upload.
package httpapi
