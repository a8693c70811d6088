// Package directory binds DIRECTORY logins against an LDAP server.
package directory

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"strings"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
)

// AttributeDN is the key under which Attributes reports the entry DN.
const AttributeDN = service.DirectoryDNAttribute

// conn is the subset of *ldap.Conn the client needs.
type conn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
}

// dialFunc opens a connection and returns it with its close function.
type dialFunc func(ctx context.Context) (conn, func(), error)

// Client implements service.Directory on top of go-ldap. Each call opens a
// short-lived connection bounded by the configured timeout.
type Client struct {
	baseDN       string
	bindDN       string
	bindPassword string
	userFilter   string
	timeout      time.Duration
	dial         dialFunc
	logger       *slog.Logger
}

// NewDirectory provides the Directory for the DIRECTORY scheme, or nil when
// no directory is configured.
func NewDirectory(cfg *config.Config, logger *slog.Logger) service.Directory {
	if cfg.Directory == nil {
		return nil
	}
	logger.Info("Directory configured", slog.String("url", cfg.Directory.URL))

	return NewClient(cfg.Directory, logger)
}

// NewClient creates a directory client for cfg.
func NewClient(cfg *config.DirectoryConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return newClient(cfg, timeout, dialer(cfg.URL, timeout, cfg.InsecureSkipVerify), logger)
}

func newClient(cfg *config.DirectoryConfig, timeout time.Duration, dial dialFunc, logger *slog.Logger) *Client {
	return &Client{
		baseDN:       cfg.BaseDN,
		bindDN:       cfg.BindDN,
		bindPassword: cfg.BindPassword,
		userFilter:   cfg.UserFilter,
		timeout:      timeout,
		dial:         dial,
		logger:       logger,
	}
}

func dialer(url string, timeout time.Duration, insecure bool) dialFunc {
	return func(ctx context.Context) (conn, func(), error) {
		d := &net.Dialer{Timeout: timeout}
		if deadline, ok := ctx.Deadline(); ok {
			d.Deadline = deadline
		}

		opts := []ldap.DialOpt{ldap.DialWithDialer(d)}
		if insecure {
			//nolint:gosec
			opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
		}

		c, err := ldap.DialURL(url, opts...)
		if err != nil {
			return nil, nil, err
		}
		c.SetTimeout(timeout)

		return c, func() { c.Close() }, nil
	}
}

// BuildFilter expands {username} and {directoryId} in template with
// escaped values.
func BuildFilter(template, username, directoryID string) string {
	return strings.NewReplacer(
		"{username}", ldap.EscapeFilter(username),
		"{directoryId}", ldap.EscapeFilter(directoryID),
	).Replace(template)
}

// Filter expands the configured user filter for a login.
func (c *Client) Filter(username, directoryID string) string {
	return BuildFilter(c.userFilter, username, directoryID)
}

// Bind looks up the single entry matching filter and binds as it with
// credential. An unknown entry or a rejected password yields false.
func (c *Client) Bind(ctx context.Context, filter, credential string) (bool, error) {
	// An empty password would be an unauthenticated bind, which most servers accept.
	if credential == "" {
		return false, nil
	}

	var matched bool
	err := c.withConn(ctx, func(lc conn) error {
		entry, err := c.findOne(lc, filter, []string{AttributeDN})
		if err != nil || entry == nil {
			return err
		}

		if err := lc.Bind(entry.DN, credential); err != nil {
			if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
				return nil
			}

			return errors.Wrap(err, "user bind")
		}
		matched = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return matched, nil
}

// Attributes reads names from the single entry matching filter. The DN is
// always included under AttributeDN.
func (c *Client) Attributes(ctx context.Context, filter string, names ...string) (map[string][]string, error) {
	var attrs map[string][]string
	err := c.withConn(ctx, func(lc conn) error {
		entry, err := c.findOne(lc, filter, names)
		if err != nil || entry == nil {
			return err
		}

		attrs = make(map[string][]string, len(names)+1)
		attrs[AttributeDN] = []string{entry.DN}
		for _, name := range names {
			if values := entry.GetAttributeValues(name); len(values) > 0 {
				attrs[name] = values
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return attrs, nil
}

// findOne binds as the service account and returns the unique entry for
// filter, or nil when there is none or the filter is ambiguous.
func (c *Client) findOne(lc conn, filter string, attributes []string) (*ldap.Entry, error) {
	if c.bindDN != "" {
		if err := lc.Bind(c.bindDN, c.bindPassword); err != nil {
			return nil, errors.Wrap(err, "service bind")
		}
	}

	result, err := lc.Search(ldap.NewSearchRequest(
		c.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		2, int(c.timeout.Seconds()), false,
		filter,
		attributes,
		nil,
	))
	switch {
	case ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded):
		c.logger.Warn("Directory filter matched more than one entry", slog.String("filter", filter))

		return nil, nil
	case ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "search")
	}

	switch len(result.Entries) {
	case 0:
		return nil, nil
	case 1:
		return result.Entries[0], nil
	default:
		c.logger.Warn("Directory filter matched more than one entry", slog.String("filter", filter))

		return nil, nil
	}
}

// withConn runs fn on a fresh connection and abandons it when ctx or the
// configured timeout ends first.
func (c *Client) withConn(ctx context.Context, fn func(conn) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	lc, closeConn, err := c.dial(ctx)
	if err != nil {
		return errors.Wrap(domainerrors.ErrDirectoryUnavailable, err.Error())
	}

	done := make(chan error, 1)
	go func() {
		done <- fn(lc)
	}()

	select {
	case err = <-done:
		closeConn()
	case <-ctx.Done():
		closeConn()
		deliverycontext.GetLoggerOrDefault(ctx, c.logger).Warn("Directory request abandoned", slog.Any("error", ctx.Err()))

		return errors.Wrap(domainerrors.ErrDirectoryUnavailable, ctx.Err().Error())
	}

	if err != nil {
		return errors.Wrap(domainerrors.ErrDirectoryUnavailable, err.Error())
	}

	return nil
}

var _ service.Directory = (*Client)(nil)
