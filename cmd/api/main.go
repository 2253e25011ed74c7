package main

import (
	"fmt"
	"log"
	"net/http"

	"blogAPI/cmd/app"
	"blogAPI/internal/config"
	handlers "blogAPI/internal/handler"
	"blogAPI/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := NewRouter(handler, cfg)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.LoggingMiddleware,
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// NewRouter собирает все маршруты под API префиксом
func NewRouter(handler *handlers.Handlers, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix(cfg.APIPrefix).Subrouter()

	// system
	api.HandleFunc("", handler.Root).Methods(http.MethodGet)
	api.HandleFunc("/", handler.Root).Methods(http.MethodGet)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// auth
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)

	// current user
	api.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/me", handler.UpdateCurrentUser).Methods(http.MethodPut)
	api.HandleFunc("/me", handler.DeleteCurrentUser).Methods(http.MethodDelete)
	api.HandleFunc("/me/posts", handler.GetMyPosts).Methods(http.MethodGet)
	api.HandleFunc("/me/comments", handler.GetMyComments).Methods(http.MethodGet)
	api.HandleFunc("/me/likes", handler.GetMyLikes).Methods(http.MethodGet)

	// users
	api.HandleFunc("/users/{id:[0-9]+}", handler.GetUser).Methods(http.MethodGet)

	// posts
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id:[0-9]+}/with-like", handler.GetPostWithLike).Methods(http.MethodGet)

	// comments
	api.HandleFunc("/posts/{id:[0-9]+}/comments", handler.GetPostComments).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}/comments", handler.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/comments/{commentID:[0-9]+}", handler.UpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id:[0-9]+}/comments/{commentID:[0-9]+}", handler.DeleteComment).Methods(http.MethodDelete)

	// likes
	api.HandleFunc("/posts/{id:[0-9]+}/likes", handler.GetPostLikes).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}/like", handler.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/like", handler.UnlikePost).Methods(http.MethodDelete)

	// images
	api.HandleFunc("/posts/{id:[0-9]+}/images", handler.AddImage).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/images/{imageID:[0-9]+}", handler.DeleteImage).Methods(http.MethodDelete)

	// tags
	api.HandleFunc("/tags", handler.GetTags).Methods(http.MethodGet)
	api.HandleFunc("/tags", handler.CreateTag).Methods(http.MethodPost)
	api.HandleFunc("/tags/{id:[0-9]+}/posts", handler.GetPostsByTag).Methods(http.MethodGet)

	// statuses
	api.HandleFunc("/status", handler.GetStatuses).Methods(http.MethodGet)
	api.HandleFunc("/status", handler.CreateStatus).Methods(http.MethodPost)

	return router
}
