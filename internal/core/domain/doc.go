// Package domain contains the core types shared across the toolkit:
// version sources for GitHub lookups, external store specifications, and
// the sentinel errors returned by services and connectors.
package domain
