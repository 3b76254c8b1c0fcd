// Package cave is a client for a CAVE (Connectome Annotation Versioning
// Engine) deployment. It covers the subset of the API the toolkit needs:
// datastack metadata from the info service and materialization versions,
// including pinning a client to one version so queries stay consistent.
package cave
