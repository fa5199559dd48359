// Package index discovers installable artifacts on a simple package index.
//
// # Overview
//
// A simple index publishes one HTML page per package. Every distributable
// file is listed as an anchor carrying rel="internal"; anything else on the
// page (homepages, documentation, mirrors) is ignored. This package parses
// those pages and selects the newest installable wheel.
//
// # Usage
//
//	session := httputil.NewSession(httputil.Options{})
//	defer session.Close()
//
//	resolver := index.NewResolver(session, "https://pypi.org/simple/")
//	candidate, err := resolver.Find(ctx, "pip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(candidate.Filename, candidate.URL)
//
// # Candidate Selection
//
// Only wheel filenames are eligible. The version is the second
// hyphen-delimited token of the filename and must parse under PEP 440;
// filenames that don't are skipped. Candidates are ordered by the PEP 440
// total ordering (pre-release < release < post-release), and ties between
// identical versions resolve deterministically to the first link on the page.
//
// # Errors
//
// Find returns FETCH_ERROR for non-2xx index responses and
// NO_ACCEPTABLE_FILE when the page yields zero eligible candidates.
package index
