package stubserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/logger"
)

// Server is an in-memory rendition of the shopping-list REST API, for
// integration tests and local development. It mimics the real contract —
// cookie session, CSRF header on mutations, additive inventory semantics —
// while holding all state in maps.
type Server struct {
	router    *echo.Echo
	csrfToken string

	mx        sync.Mutex
	entries   []*domain.ShoppingListEntry
	inventory map[domain.ComponentID]*domain.InventoryEntry
	currency  domain.Currency

	failures map[string]int
}

func New(csrfToken string) *Server {
	srv := &Server{
		router:    echo.New(),
		csrfToken: csrfToken,
		inventory: make(map[domain.ComponentID]*domain.InventoryEntry),
		currency:  domain.Currency{Code: "USD"},
		failures:  make(map[string]int),
	}
	srv.router.HideBanner = true
	srv.router.Logger.SetLevel(log.WARN)
	srv.router.Validator = NewValidator()
	srv.router.Binder = NewBinder()
	srv.router.JSONSerializer = sonicSerializer{}
	srv.router.HTTPErrorHandler = httpErrorHandler
	srv.router.Use(middleware.Logger())
	srv.router.Use(srv.csrfMiddleware)

	list := srv.router.Group("/shopping-list")
	list.GET("/", srv.getShoppingList)
	list.GET("/total-price/", srv.totalPrice)
	list.GET("/:component_pk/total-price/", srv.componentTotalPrice)
	list.GET("/:component_pk/component-quantity/", srv.componentQuantity)
	list.GET("/:component_pk/component-quantity/anonymous/", srv.componentQuantityAnonymous)
	list.GET("/:component_pk/component-quantity/:bom_item_pk/:module_pk/", srv.componentQuantityScoped)
	list.PATCH("/:component_pk/update/", srv.updateQuantity)
	list.DELETE("/:module_pk/delete/", srv.deleteModuleEntries)
	list.DELETE("/delete-anonymous/", srv.deleteAnonymousEntries)
	list.POST("/inventory/add/", srv.migrateAll)
	list.POST("/:component_pk/add/", srv.migrateOne)

	srv.router.GET("/inventory/:component_pk/component-quantity/", srv.inventoryQuantity)
	srv.router.GET("/currency/", srv.getCurrency)

	return srv
}

// ServeHTTP lets tests mount the stub in an httptest.Server directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Serve(addr string) {
	logger.Fatal(context.Background(), s.router.Start(addr))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

// csrfMiddleware rejects mutations without the expected CSRF header, the way
// the real backend does. Reads pass without it.
func (s *Server) csrfMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if ctx.Request().Method == http.MethodGet {
			return next(ctx)
		}
		if s.csrfToken != "" && ctx.Request().Header.Get(constants.HeaderCSRFToken) != s.csrfToken {
			return constants.ErrUnauthorized
		}
		return next(ctx)
	}
}

// FailNext makes the next n calls to op answer with the given status,
// letting tests exercise failure paths deterministically. op is the
// handler name, e.g. "migrate-all".
func (s *Server) FailNext(op string, n int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.failures[op] = n
}

func (s *Server) failing(op string) bool {
	left, ok := s.failures[op]
	if !ok || left == 0 {
		return false
	}
	s.failures[op] = left - 1
	return true
}
