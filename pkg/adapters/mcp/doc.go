// Package mcp exposes a Meridian engine to LLM agents over the Model Context
// Protocol, as tools (next_area, resolve_edge, get_layout, blend_climate and
// friends) and as the meridian://layout and meridian://graph resources.
package mcp
