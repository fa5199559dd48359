package index

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/httputil"
)

// wheelSuffix is the only supported binary distribution format.
const wheelSuffix = ".whl"

// Resolver locates the newest installable wheel for a package on a simple
// index. It performs exactly one blocking network read per Find call and
// writes nothing locally.
type Resolver struct {
	session  *httputil.Session
	indexURL string
}

// NewResolver creates a Resolver that fetches pages through session.
// indexURL is the base index URL, e.g. "https://pypi.org/simple/".
func NewResolver(session *httputil.Session, indexURL string) *Resolver {
	return &Resolver{
		session:  session,
		indexURL: indexURL,
	}
}

// Find fetches the index page for pkg and returns the candidate with the
// highest version.
//
// Eligible candidates are rel="internal" links whose final path segment ends
// in .whl and whose second hyphen-delimited token parses as a PEP 440
// version. Ties between identical versions resolve to the first-seen link.
//
// Returns FETCH_ERROR if the page cannot be fetched, NO_ACCEPTABLE_FILE if
// the page yields zero eligible candidates.
func (r *Resolver) Find(ctx context.Context, pkg string) (Candidate, error) {
	base, err := url.Parse(r.indexURL)
	if err != nil {
		return Candidate{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid index URL %q", r.indexURL)
	}
	ref, err := url.Parse(pkg + "/")
	if err != nil {
		return Candidate{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid package name %q", pkg)
	}
	pageURL := base.ResolveReference(ref)

	body, err := r.session.Get(ctx, pageURL.String())
	if err != nil {
		return Candidate{}, err
	}

	var candidates []Candidate
	for _, link := range ExtractLinks(body, pageURL) {
		parsed, err := url.Parse(link)
		if err != nil {
			continue
		}
		filename := path.Base(parsed.Path)

		// Installation is only supported from wheels.
		if !strings.HasSuffix(filename, wheelSuffix) {
			continue
		}

		// Wheel filenames encode the version as the second hyphen-delimited
		// segment: {name}-{version}-{python tag}-{abi tag}-{platform tag}.whl
		parts := strings.Split(filename, "-")
		if len(parts) < 2 {
			continue
		}
		version, err := pep440.Parse(parts[1])
		if err != nil {
			continue
		}

		candidates = append(candidates, Candidate{
			Version:  version,
			URL:      link,
			Filename: filename,
		})
	}

	if len(candidates) == 0 {
		return Candidate{}, errors.New(errors.ErrCodeNoAcceptableFile,
			"cannot locate any installable files for %s on %s", pkg, pageURL)
	}

	// Stable sort keeps link order for equal versions, so the first-seen
	// maximal candidate wins.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Version.GreaterThan(candidates[j].Version)
	})
	return candidates[0], nil
}
