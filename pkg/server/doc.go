// Package server serves rendered tree documents over HTTP and WebSocket.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	POST /render        render the document in the request body
//	GET  /docs/{name}   render a document from the docs directory
//	GET  /ws            render requests and reload notifications
//	GET  /metrics       Prometheus metrics
//
// Errors are answered with the JSON form of a RaptorError. When watching is
// enabled, every change to a document under the docs directory is
// broadcast to WebSocket clients as a reload message.
package server
