// Package cloudvolume reads the info manifest of Neuroglancer "precomputed"
// volumes and derives per-mip bounding box statistics from it. Volumes served
// over plain HTTPS are fetched directly; gs:// paths go through the Google
// Cloud Storage JSON API without credentials, which is sufficient for the
// public MICrONS buckets.
package cloudvolume
