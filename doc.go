/*
Package meridian is a procedural world-topology engine for games and simulations set on a map of real or invented places.

It turns a sparse, hand-authored directed graph of named areas into a consistent hex-grid layout, resolves multi-step "liminal" corridors for crossings that have no direct edge (oceans, deserts, mountain passes), and blends biomes across map borders whose climates differ.

# Concept

A world is three tables: geography (zone -> region -> area -> climate and biome), adjacency (area -> N/S/E/W -> area name or liminal key) and liminal sequences (key -> destination, origin, steps). Everything else is derived from them at load time and never mutated: reverse sequences, the hex layout, and neighbor climates. Runtime lookups never fail; missing data degrades to a random-exploration fallback with a warning.

# Key Features

  - Deterministic Layout: the same world and seeds always produce the same coordinates.
  - Bidirectional Corridors: authoring one direction of a crossing derives the way back.
  - Climate Blending: tiles near a border are substituted by distance, noise and a sparse table.
  - Hexagonal Architecture: worlds load from YAML files, Loam markdown repositories or the Go DSL, and layouts cache in memory, on disk or in Redis.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/meridian"
		"github.com/aretw0/meridian/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		// Reads a YAML file, or a directory of area documents.
		eng, err := meridian.New(ctx, "./world.yaml")
		if err != nil {
			log.Fatal(err)
		}

		res := eng.Next("Edinburgh", domain.North)
		switch res.Kind {
		case domain.NavAdjacent:
			fmt.Println("walk to", res.Area.Name)
		case domain.NavLiminal:
			fmt.Println("cross", res.SequenceKey, "to", res.Destination)
		case domain.NavRandomFallback:
			fmt.Println("explore at random:", res.Reason)
		}

		layout, err := eng.Layout(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(len(layout.Positions), "cells")
	}

# Architecture

  - pkg/domain: Core types (Area, Direction, LiminalSequence, Layout, TileMap).
  - pkg/registry: Liminal sequence table and reverse derivation.
  - pkg/world: The adjacency graph and edge classification.
  - pkg/hexgrid: BFS hex layout with bounded collision search.
  - pkg/climate: Biome transition engine.
  - pkg/navigation: Gameplay move resolution.
  - pkg/ports: Interfaces for loaders, caches and lockers.
  - pkg/adapters: File, Loam, memory, Redis, HTTP and MCP implementations.
*/
package meridian
