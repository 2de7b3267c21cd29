// Package redis provides a Redis-backed layout cache and a distributed lock
// that serializes layout builds across replicas.
package redis
