// Package journal records minted identifiers in a Pebble-backed,
// sequence-ordered log so the service can answer "what was issued
// recently" without holding anything in memory.
package journal
