// Package catalog implements the item catalog and the free-text resolver.
//
// The catalog:
//   - Is built once at startup from the item dataset snapshot
//   - Is immutable afterwards and safe for concurrent lookups
//   - Keys items by UniqueName plus per-locale localized names
//
// The resolver ranks every entry by sequence-matching distance against the
// query and returns the closest K distinct entries.
package catalog
