package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"oppositerush/internal/cache"
	"oppositerush/internal/repository"
	"oppositerush/internal/service"
	"oppositerush/internal/transport/rest/handler"
	"oppositerush/internal/transport/rest/middleware"
	"oppositerush/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	AuthService *service.AuthService
	RoomManager *service.RoomManager
	Leaderboard cache.LeaderboardCache
	MatchRepo   repository.MatchRepo
	WSHandler   *ws.Handler
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(c.RoomManager)
	lbHandler := handler.NewLeaderboardHandler(c.Leaderboard, c.MatchRepo)
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms", roomHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{id}", roomHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{id}/join", roomHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/leaderboard", lbHandler.Top).Methods("GET", "OPTIONS")
	v1.HandleFunc("/matches/recent", lbHandler.RecentMatches).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/rooms/{id}", c.WSHandler.PlayerWS).Methods("GET")

	// Player routes (require a room-scoped token)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)
	playerRoutes.HandleFunc("/rooms/{id}/leave", roomHandler.Leave).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
