package router

import (
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"notaria/config"
	_ "notaria/docs" // Registro de la especificación OpenAPI generada por swag
	"notaria/internal/api/process"
	"notaria/internal/api/user"
	"notaria/internal/pkg/cache"
	"notaria/internal/pkg/middleware"
)

// NewRouter configura y devuelve el router HTTP principal. Recibe los
// handlers ya inicializados por inyección de dependencias; aquí solo se
// decide qué rutas existen y qué middlewares las envuelven.
func NewRouter(
	processHandler *process.Handler,
	userHandler *user.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	cfg *config.Config,
) http.Handler {

	mux := http.NewServeMux()
	auth := middleware.NewAuthMiddleware(tokenSvc)

	// --- 1. Health check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Documentación OpenAPI ---
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- 3. Autenticación (rutas públicas, salvo /me) ---
	mux.HandleFunc("/api/auth/register", userHandler.RegisterHandler)
	mux.HandleFunc("/api/auth/login", userHandler.LoginHandler)
	mux.HandleFunc("/api/auth/me", auth(userHandler.MeHandler))

	// --- 4. Procesos (todas protegidas) ---
	mux.HandleFunc("/api/processes", auth(processHandler.CollectionHandler))
	mux.HandleFunc("/api/processes/", auth(processHandler.ItemHandler))

	// --- 5. Usuarios (todas protegidas; mutación self-only en el servicio) ---
	mux.HandleFunc("/api/users", auth(userHandler.CollectionHandler))
	mux.HandleFunc("/api/users/", auth(userHandler.ItemHandler))

	// --- 6. Middlewares globales: rate limit por IP y CORS ---
	limited := middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)(mux)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return corsMiddleware.Handler(limited)
}

// PingHandler es el health check del servicio.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
