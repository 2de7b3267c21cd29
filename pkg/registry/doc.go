/*
Package registry holds the liminal sequence table: named multi-step transit
corridors used where two areas share no direct edge (oceans, deserts).

Loading is two-phase. A Builder collects the authored table; Freeze derives the
reverse of every sequence declaring an origin area and returns an immutable
Registry. Lookups only ever see the frozen, merged table.
*/
package registry
