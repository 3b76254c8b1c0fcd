// Package connectors groups the clients for the external services the
// toolkit talks to: GitHub for version metadata, precomputed volume
// storage, the CAVE annotation service, and JupyterHub.
//
// Each subpackage owns its own client, error types, and rate limiting.
package connectors
