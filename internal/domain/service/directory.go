package service

import "context"

// DirectoryDNAttribute is the key under which Attributes reports the entry DN.
const DirectoryDNAttribute = "dn"

// Directory is an external identity directory (LDAP or compatible).
type Directory interface {
	// Filter builds the search filter for a login, escaping both values.
	Filter(username, directoryID string) string
	// Bind verifies credential for the single entry matched by filter.
	Bind(ctx context.Context, filter, credential string) (bool, error)

	// Attributes reads the named attributes of the entry matched by filter.
	// A missing entry yields a nil map and no error.
	Attributes(ctx context.Context, filter string, names ...string) (map[string][]string, error)
}
