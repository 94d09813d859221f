package constants

const (
	CookieKeySession = "sessionid"
	CookieKeyCSRF    = "csrftoken"

	HeaderCSRFToken = "X-CSRFToken"
	HeaderRequestID = "X-Request-ID"

	ViperBaseURL   = "base_url"
	ViperSessionID = "session_id"
	ViperCSRFToken = "csrf_token"
	ViperCurrency  = "currency"
	ViperLogLevel  = "log_level"
)

// Resource names key the snapshot cache, see internal/pkg/cache.
const (
	ResourceShoppingList      = "shopping-list"
	ResourceInventory         = "inventory"
	ResourceTotalPrice        = "total-price"
	ResourceComponentQuantity = "component-quantity"
	ResourceCurrency          = "currency"
)
