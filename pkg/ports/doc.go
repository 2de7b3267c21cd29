/*
Package ports defines the driven and driving ports of the Meridian engine.

These interfaces decouple the topology core from where world data comes from,
where computed layouts are kept, and how the engine is exposed.

# Key Interfaces

  - WorldLoader: supplies the geography, adjacency and liminal tables (memory, YAML file, Loam).
  - LayoutCache: keeps computed layouts between builds (memory, Redis).
  - DistributedLocker: serializes layout builds across replicas sharing one cache.
  - Navigator: the read-only engine surface consumed by the HTTP and MCP adapters.
*/
package ports
