package domain

// StoreSpec describes an external bulk-data store referenced by the research
// pipelines. Specs are registered under the "stores" namespace of the
// configuration file so every tool resolves the same locations.
type StoreSpec struct {
	// Protocol is the access protocol, e.g. "file".
	Protocol string `toml:"protocol"`

	// Location is where the data lives.
	Location string `toml:"location"`

	// Stage is the staging directory for uploads.
	Stage string `toml:"stage"`
}

// MakeStoreSpec builds a file-protocol store spec where the staging directory
// is the store location itself.
func MakeStoreSpec(path string) StoreSpec {
	return StoreSpec{
		Protocol: "file",
		Location: path,
		Stage:    path,
	}
}
