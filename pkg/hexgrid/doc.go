/*
Package hexgrid embeds the adjacency graph into a flat-top offset-coordinate
hex grid.

Offset is the whole neighbor rule table as one pure function. Builder walks the
graph breadth-first from fixed seeds, examining edges in N, S, E, W order, and
places each newly reached area one step away from its parent. When that cell is
taken it probes rings of radius 1..3 (eight directions each) and takes the
first free cell; if none is free the area is reported as unplaceable.

The traversal queue must stay strictly FIFO: the output is only deterministic
because of it.
*/
package hexgrid
