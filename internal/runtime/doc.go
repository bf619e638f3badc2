// Package runtime wires configuration, storage, and the issuance
// journal into a single-node service instance.
package runtime
