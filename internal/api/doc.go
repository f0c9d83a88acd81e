// Package api provides HTTP clients for the two upstream services.
//
// Albion Data Project (community market data):
//   - GET /api/v2/stats/prices/{item}   current prices per location
//   - GET /api/v1/stats/charts/{item}   one calendar day of history buckets
//   - GET /api/v2/stats/gold            gold price series
//
// Official gameinfo API (players, guilds, alliances, item icons).
//
// Both services are unauthenticated. Empty result arrays are valid "no
// data" responses, not errors.
package api
