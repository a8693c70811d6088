package directory

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	serviceDN = "cn=svc,dc=example,dc=com"
	aliceDN   = "uid=alice,ou=people,dc=example,dc=com"
)

type fakeConn struct {
	entries   []*ldap.Entry
	passwords map[string]string
	searchErr error
	block     chan struct{}
	binds     []string
}

func (f *fakeConn) Bind(username, password string) error {
	if f.block != nil {
		<-f.block
	}
	f.binds = append(f.binds, username)
	if f.passwords[username] != password {
		return ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
	}

	return nil
}

func (f *fakeConn) Search(*ldap.SearchRequest) (*ldap.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	return &ldap.SearchResult{Entries: f.entries}, nil
}

func newTestClient(fc *fakeConn, closed *atomic.Int32) *Client {
	cfg := &config.DirectoryConfig{
		BaseDN:       "dc=example,dc=com",
		BindDN:       serviceDN,
		BindPassword: "svc-secret",
		UserFilter:   "(uid={username})",
	}
	dial := func(context.Context) (conn, func(), error) {
		return fc, func() { closed.Add(1) }, nil
	}

	return newClient(cfg, 200*time.Millisecond, dial, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func aliceEntry() *ldap.Entry {
	return ldap.NewEntry(aliceDN, map[string][]string{
		"mail":     {"alice@example.com"},
		"uid":      {"alice"},
		"memberOf": {"cn=ops,dc=example,dc=com", "cn=dev,dc=example,dc=com"},
	})
}

func TestBuildFilter(t *testing.T) {
	filter := BuildFilter("(&(uid={username})(employeeNumber={directoryId}))", "al*ice)(uid=*", "42")
	assert.Equal(t, `(&(uid=al\2aice\29\28uid=\2a)(employeeNumber=42))`, filter)
}

func TestClient_Filter(t *testing.T) {
	var closed atomic.Int32
	client := newTestClient(&fakeConn{}, &closed)

	assert.Equal(t, `(uid=bob\2a)`, client.Filter("bob*", ""))
}

func TestNewDirectory_Unconfigured(t *testing.T) {
	assert.Nil(t, NewDirectory(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestClient_Bind(t *testing.T) {
	ctx := context.Background()
	passwords := map[string]string{serviceDN: "svc-secret", aliceDN: "S3cret!"}

	tests := []struct {
		name       string
		conn       *fakeConn
		credential string
		want       bool
		wantErr    bool
	}{
		{"matches", &fakeConn{entries: []*ldap.Entry{aliceEntry()}, passwords: passwords}, "S3cret!", true, false},
		{"wrong password", &fakeConn{entries: []*ldap.Entry{aliceEntry()}, passwords: passwords}, "nope", false, false},
		{"empty password never binds", &fakeConn{entries: []*ldap.Entry{aliceEntry()}, passwords: passwords}, "", false, false},
		{"unknown entry", &fakeConn{passwords: passwords}, "S3cret!", false, false},
		{"ambiguous filter", &fakeConn{entries: []*ldap.Entry{aliceEntry(), aliceEntry()}, passwords: passwords}, "S3cret!", false, false},
		{"service account rejected", &fakeConn{entries: []*ldap.Entry{aliceEntry()}, passwords: map[string]string{aliceDN: "S3cret!"}}, "S3cret!", false, true},
		{"search fails", &fakeConn{searchErr: errors.New("connection reset"), passwords: passwords}, "S3cret!", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var closed atomic.Int32
			client := newTestClient(tt.conn, &closed)

			got, err := client.Bind(ctx, "(uid=alice)", tt.credential)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domainerrors.ErrDirectoryUnavailable))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_BindTimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	var closed atomic.Int32
	client := newTestClient(&fakeConn{block: block}, &closed)

	start := time.Now()
	ok, err := client.Bind(context.Background(), "(uid=alice)", "S3cret!")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domainerrors.ErrDirectoryUnavailable))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(1), closed.Load())
}

func TestClient_Attributes(t *testing.T) {
	ctx := context.Background()
	passwords := map[string]string{serviceDN: "svc-secret"}

	var closed atomic.Int32
	client := newTestClient(&fakeConn{entries: []*ldap.Entry{aliceEntry()}, passwords: passwords}, &closed)

	attrs, err := client.Attributes(ctx, "(uid=alice)", "mail", "memberOf", "employeeNumber")
	require.NoError(t, err)
	assert.Equal(t, []string{aliceDN}, attrs[AttributeDN])
	assert.Equal(t, []string{"alice@example.com"}, attrs["mail"])
	assert.Len(t, attrs["memberOf"], 2)
	assert.NotContains(t, attrs, "employeeNumber")
	assert.Equal(t, int32(1), closed.Load())

	client = newTestClient(&fakeConn{passwords: passwords}, &closed)
	attrs, err = client.Attributes(ctx, "(uid=bob)", "mail")
	require.NoError(t, err)
	assert.Nil(t, attrs)
}
