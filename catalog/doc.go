// Package catalog validates and persists the clients, addresses and products
// of the catalog service.
//
// Three services share one pattern: validate the input, run the cross-entity
// checks, then issue store calls. Every failure a caller can act on is
// returned as an [*Error] carrying a [Code]; storage failures are wrapped
// with [CodeStore] and keep the SDK error only as the cause.
//
// # Rules
//
//   - A client's taxId is normalized to uppercase, must be well formed and
//     must not already belong to another client.
//   - An address can only be created for an existing client, and its
//     clientId can never be changed.
//   - A client that still has addresses cannot be deleted.
//   - A product's basePrice is a number greater than or equal to zero.
//
// # Consistency
//
// The uniqueness and referential checks read before they write, with no
// locks and no transactions. Two concurrent creates with the same taxId can
// both succeed, and an address created while its client is being deleted
// can outlive the client. Callers needing stronger guarantees must
// serialize those operations themselves.
package catalog
