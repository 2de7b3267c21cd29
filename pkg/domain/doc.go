/*
Package domain contains the core data model of the Meridian world-topology engine.

It is kept pure and free of I/O, following the Hexagonal Architecture split used
across the repository: loaders and caches live in adapters, algorithms live in
their own packages and only exchange these types.

# Key Entities

  - Area / AreaDefinition / Geography: uniquely named places and their zone/region metadata.
  - Adjacency / Edges: the authored directed graph (area -> N,S,E,W -> target).
  - LiminalSequence: a multi-step transit corridor used where no direct edge exists.
  - HexPosition / Layout: the 2D offset-coordinate embedding produced by a layout build.
  - TileMap / TransitionZone: per-map tiles and the record of a climate blending pass.
  - EdgeResolution / NavigationResult: the tagged outcomes of edge lookups.
*/
package domain
