// Package world implements the adjacency graph: area -> {N,S,E,W} -> neighbor
// area, liminal sequence key, or nothing.
package world
