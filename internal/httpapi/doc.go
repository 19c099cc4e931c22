// Package httpapi exposes the catalog services as a JSON REST API.
//
// Routes live under /api/clients, /api/addresses and /api/products, plus
// GET /health and GET /. Service errors map to 400 for rejected input,
// 404 for missing entities, 409 for conflicts and 500 for everything else.
// A 500 never carries the underlying cause; it is logged instead.
package httpapi
