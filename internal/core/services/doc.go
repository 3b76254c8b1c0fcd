// Package services contains the core orchestration logic of the toolkit.
// The version service combines the local installation lookup, the GitHub
// release source, and the version cache into the installed-vs-latest check.
package services
