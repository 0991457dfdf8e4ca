// Package testserver wires a full rosterdesk stack over an in-memory
// database and an httptest HTTP listener for functional tests.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/rosterdesk/internal/catalog"
	"github.com/ganot/rosterdesk/internal/identity/localauth"
	"github.com/ganot/rosterdesk/internal/localstore"
	"github.com/ganot/rosterdesk/internal/mcp"
	"github.com/ganot/rosterdesk/internal/roster"
	"github.com/ganot/rosterdesk/internal/session"
	"github.com/ganot/rosterdesk/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Session *session.Manager
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := localstore.New(sqlite.NewKVBackend(db), nil)
	provider := localauth.New(sqlite.NewUserRepository(db), nil)

	sessionMgr := session.New(provider, store, nil)
	rosterSvc := roster.NewService(store, nil)
	catalogSvc := catalog.NewService(nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Session: sessionMgr,
			Roster:  rosterSvc,
			Catalog: catalogSvc,
		},
	})

	handler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(handler)

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Session: sessionMgr,
	}

	t.Cleanup(func() {
		server.Close()
		sessionMgr.Close()
		_ = db.Close()
	})

	return ts
}
