package index

import (
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Candidate is one discoverable artifact on an index page: its parsed
// version, its download URL, and its filename. Candidates are immutable
// once constructed; only the version ordering is meaningful, identity is not.
type Candidate struct {
	Version  pep440.Version
	URL      string
	Filename string
}
