package stubservertest

import (
	"net/http/httptest"
	"testing"

	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
	"github.com/bomsquad/shoplist/internal/stubserver"
)

// Start runs the stub API behind an httptest server and returns it together
// with a real client pointed at it and a fresh cache.
func Start(t *testing.T, csrfToken string) (*stubserver.Server, restapi.Client, *cache.Cache) {
	t.Helper()

	srv := stubserver.New(csrfToken)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, err := restapi.NewClient(restapi.Options{
		BaseURL:   ts.URL,
		SessionID: "test-session",
		CSRFToken: csrfToken,
	})
	if err != nil {
		t.Fatalf("restapi.NewClient: %v", err)
	}

	return srv, client, cache.New()
}
