package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	inventoryHandler := &InventoryHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: registration and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Inventory, always scoped to the authenticated user.
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", authMW(http.HandlerFunc(inventoryHandler.Create)))
	mux.Handle("PUT /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Update)))
	mux.Handle("DELETE /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Delete)))
	mux.Handle("PUT /api/inventory/{id}/image", authMW(http.HandlerFunc(inventoryHandler.UploadImage)))
	mux.Handle("GET /api/inventory/{id}/image", authMW(http.HandlerFunc(inventoryHandler.GetImage)))

	return mux
}
