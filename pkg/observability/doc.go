/*
Package observability provides Prometheus collectors for the Meridian engine.

It counts navigation outcomes by kind and fallback reason, times layout builds
and cache hits, tracks how many tiles climate passes rewrite, and instruments
HTTP routes. Every Metrics value owns its registry so tests and embedded
engines never collide on the global one.
*/
package observability
