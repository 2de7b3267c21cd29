// Package http exposes a Meridian engine over a JSON HTTP API routed with chi.
//
//	GET  /areas                     every area
//	GET  /areas/{name}              one area
//	GET  /areas/{name}/next/{dir}   navigation result (never fails)
//	GET  /areas/{name}/edges/{dir}  raw edge classification
//	GET  /sequences                 liminal sequences, derived included
//	GET  /sequences/{key}           one sequence
//	GET  /layout                    hex layout for the configured seeds
//	GET  /graph                     Mermaid flowchart
//	POST /climate/blend             climate pass over a tile map
//	GET  /events                    SSE stream of world reloads
//	GET  /metrics                   Prometheus metrics, when enabled
package http
