package router

import (
	"net/http"
	"strings"

	"chowline/internal/auth"
	"chowline/internal/handler"
	"chowline/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the resource handlers the router wires up.
type Handlers struct {
	Product    *handler.ProductHandler
	Attribute  *handler.AttributeHandler
	Category   *handler.CategoryHandler
	Order      *handler.OrderHandler
	Restaurant *handler.RestaurantHandler
	User       *handler.UserHandler
	Payment    *handler.PaymentHandler
	Upload     *handler.UploadHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// uploadsDir, when non-empty, is served read-only under /public/uploads/.
func New(h Handlers, authorizer *auth.Authorizer, uploadsDir string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	registerResource(mux, "/api/v1/products", resourceRoutes{
		list:   h.Product.GetAll,
		create: h.Product.Create,
		get:    h.Product.GetByID,
		update: h.Product.Update,
		delete: h.Product.Delete,
	})

	registerResource(mux, "/api/v1/attributes", resourceRoutes{
		list:   h.Attribute.GetAll,
		create: h.Attribute.Create,
		get:    h.Attribute.GetByID,
		update: h.Attribute.Update,
		delete: h.Attribute.Delete,
	})

	registerResource(mux, "/api/v1/category", resourceRoutes{
		list:   h.Category.GetAll,
		create: h.Category.Create,
		update: h.Category.Update,
		delete: h.Category.Delete,
	})

	restaurantRoute := func(w http.ResponseWriter, r *http.Request) {
		rest := subPath(r.URL.Path, "/api/v1/restaurants")

		if rest == "nearest" {
			if r.Method != http.MethodPost {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			h.Restaurant.Nearest(w, r)
			return
		}

		dispatchResource(w, r, rest, resourceRoutes{
			list:   h.Restaurant.GetAll,
			create: h.Restaurant.Create,
			get:    h.Restaurant.GetByID,
			update: h.Restaurant.Update,
			delete: h.Restaurant.Delete,
		})
	}
	mux.HandleFunc("/api/v1/restaurants", restaurantRoute)
	mux.HandleFunc("/api/v1/restaurants/", restaurantRoute)

	userRoute := func(w http.ResponseWriter, r *http.Request) {
		rest := subPath(r.URL.Path, "/api/v1/users")

		switch {
		case rest == "register" && r.Method == http.MethodPost:
			h.User.Register(w, r)
		case rest == "login" && r.Method == http.MethodPost:
			h.User.Login(w, r)
		case rest == "" && r.Method == http.MethodGet:
			h.User.GetAll(w, r)
		default:
			parts := strings.Split(rest, "/")
			switch {
			case len(parts) == 1 && r.Method == http.MethodGet:
				h.User.GetByID(w, r, parts[0])
			case len(parts) == 2 && parts[1] == "cart":
				switch r.Method {
				case http.MethodGet:
					h.User.GetCart(w, r, parts[0])
				case http.MethodPost:
					h.User.AddCartItem(w, r, parts[0])
				case http.MethodDelete:
					h.User.ClearCart(w, r, parts[0])
				default:
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				}
			case len(parts) == 3 && parts[1] == "cart":
				switch r.Method {
				case http.MethodPut:
					h.User.UpdateCartItem(w, r, parts[0], parts[2])
				case http.MethodDelete:
					h.User.RemoveCartItem(w, r, parts[0], parts[2])
				default:
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				}
			default:
				http.Error(w, "not found", http.StatusNotFound)
			}
		}
	}
	mux.HandleFunc("/api/v1/users", userRoute)
	mux.HandleFunc("/api/v1/users/", userRoute)

	orderRoute := func(w http.ResponseWriter, r *http.Request) {
		rest := subPath(r.URL.Path, "/api/v1/orders")

		switch {
		case rest == "" && r.Method == http.MethodPost:
			h.Order.Create(w, r)
		case rest == "" && r.Method == http.MethodGet:
			h.Order.GetAll(w, r)
		case rest == "sales" && r.Method == http.MethodGet:
			h.Order.Sales(w, r)
		case rest == "profit" && r.Method == http.MethodGet:
			h.Order.Profit(w, r)
		case strings.HasPrefix(rest, "user/") && r.Method == http.MethodGet:
			h.Order.GetByUser(w, r, strings.TrimPrefix(rest, "user/"))
		case rest != "" && !strings.Contains(rest, "/"):
			switch r.Method {
			case http.MethodGet:
				h.Order.GetByID(w, r, rest)
			case http.MethodPut:
				h.Order.UpdateStatus(w, r, rest)
			case http.MethodDelete:
				h.Order.Delete(w, r, rest)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/v1/orders", orderRoute)
	mux.HandleFunc("/api/v1/orders/", orderRoute)

	paymentRoute := func(w http.ResponseWriter, r *http.Request) {
		rest := subPath(r.URL.Path, "/api/v1/payments")

		switch {
		case rest == "" && r.Method == http.MethodPost:
			h.Payment.CreateLink(w, r)
		case rest == "webhook" && r.Method == http.MethodPost:
			h.Payment.Webhook(w, r)
		case strings.HasSuffix(rest, "/cancel") && r.Method == http.MethodPut:
			h.Payment.CancelLink(w, r, strings.TrimSuffix(rest, "/cancel"))
		case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodGet:
			h.Payment.LinkInfo(w, r, rest)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/v1/payments", paymentRoute)
	mux.HandleFunc("/api/v1/payments/", paymentRoute)

	mux.HandleFunc("/api/v1/uploads", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Upload.Upload(w, r)
	})

	if uploadsDir != "" {
		fs := http.FileServer(http.Dir(uploadsDir))
		mux.Handle("/public/uploads/", http.StripPrefix("/public/uploads/", fs))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS -> AccessControl
	var root http.Handler = mux
	root = middleware.AccessControl(authorizer, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}

// resourceRoutes is the handler set for a flat CRUD resource.
type resourceRoutes struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    func(http.ResponseWriter, *http.Request, string)
	update func(http.ResponseWriter, *http.Request, string)
	delete func(http.ResponseWriter, *http.Request, string)
}

// registerResource wires a flat CRUD resource at base (both with and
// without trailing slash).
func registerResource(mux *http.ServeMux, base string, routes resourceRoutes) {
	route := func(w http.ResponseWriter, r *http.Request) {
		dispatchResource(w, r, subPath(r.URL.Path, base), routes)
	}
	mux.HandleFunc(base, route)
	mux.HandleFunc(base+"/", route)
}

// dispatchResource routes a flat CRUD request by method and sub-path.
func dispatchResource(w http.ResponseWriter, r *http.Request, id string, routes resourceRoutes) {
	if strings.Contains(id, "/") {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if id == "" {
		switch {
		case r.Method == http.MethodGet && routes.list != nil:
			routes.list(w, r)
		case r.Method == http.MethodPost && routes.create != nil:
			routes.create(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch {
	case r.Method == http.MethodGet && routes.get != nil:
		routes.get(w, r, id)
	case r.Method == http.MethodPut && routes.update != nil:
		routes.update(w, r, id)
	case r.Method == http.MethodDelete && routes.delete != nil:
		routes.delete(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// subPath strips base and any surrounding slashes from path.
func subPath(path, base string) string {
	return strings.Trim(strings.TrimPrefix(path, base), "/")
}
