// Package store maps catalog entities onto DynamoDB tables.
//
// Each entity type lives in its own table keyed by a single string
// attribute. A [Table] translates entity operations into exactly one
// DynamoDB call each (Scan may page):
//
//	clients := store.NewTable[Client](client, "Clients", "clientId")
//	err := clients.Put(ctx, c)
//	c, err := clients.Get(ctx, id)
//	all, err := clients.ScanAll(ctx)
//	same, err := clients.ScanByFilter(ctx, "taxId", "ABCD250101XY1")
//	updated, err := clients.Patch(ctx, id, map[string]any{"phone": "555"})
//	err = clients.Delete(ctx, id)
//
// # Patches
//
// Patch builds a SET expression from an explicit field map. The key
// attribute and any protected attributes given to [NewTable] are removed
// before the expression is built, whatever the caller passes. The update
// is conditioned on the key existing, so a patch never recreates a
// deleted item.
//
// # Errors
//
//   - [ErrNotFound] - no item with the key (Get, Patch)
//   - [ErrEmptyPatch] - nothing left to write after protected attributes were removed
//
// Every other failure is the underlying SDK error wrapped with the
// operation and table name.
package store
