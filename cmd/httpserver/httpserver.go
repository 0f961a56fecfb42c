// Package httpserver manages server creation and routing.
package httpserver

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/bookstore/internal/catalogdelivery"
	"github.com/go-petr/bookstore/internal/catalogrepo"
	"github.com/go-petr/bookstore/internal/catalogservice"
	"github.com/go-petr/bookstore/internal/clientrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/entryrepo"
	"github.com/go-petr/bookstore/internal/ledgerrepo"
	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/internal/permission"
	"github.com/go-petr/bookstore/internal/purchasedelivery"
	"github.com/go-petr/bookstore/internal/purchaseservice"
	"github.com/go-petr/bookstore/internal/sessiondelivery"
	"github.com/go-petr/bookstore/internal/sessionrepo"
	"github.com/go-petr/bookstore/internal/sessionservice"
	"github.com/go-petr/bookstore/internal/userdelivery"
	"github.com/go-petr/bookstore/internal/userrepo"
	"github.com/go-petr/bookstore/internal/userservice"
	"github.com/go-petr/bookstore/internal/walletdelivery"
	"github.com/go-petr/bookstore/internal/walletservice"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/go-petr/bookstore/pkg/metricspkg"
	"github.com/go-petr/bookstore/pkg/moneypkg"
	"github.com/go-petr/bookstore/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
	Metrics    *metricspkg.Collector
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("money", moneypkg.ValidMoney); err != nil {
		return fmt.Errorf("cannot register money validator: %w", err)
	}

	if err := v.RegisterValidation("price", moneypkg.ValidPrice); err != nil {
		return fmt.Errorf("cannot register price validator: %w", err)
	}

	return nil
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	metrics := metricspkg.New()

	pageSize := config.CatalogPageSize
	if pageSize <= 0 {
		pageSize = configpkg.DefaultCatalogPageSize
	}

	userRepo := userrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	clientRepo := clientrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	bookRepo := catalogrepo.NewBookRepo(conn)
	authorRepo := catalogrepo.NewAuthorRepo(conn)
	genreRepo := catalogrepo.NewGenreRepo(conn)

	userService := userservice.New(userRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	walletService := walletservice.New(clientRepo, entryRepo, ledgerRepo, metrics)
	purchaseService := purchaseservice.New(bookRepo, clientRepo, ledgerRepo, metrics)
	bookService := catalogservice.New[domain.Book, domain.BookParams](bookRepo, pageSize)
	authorService := catalogservice.New[domain.Author, domain.AuthorParams](authorRepo, pageSize)
	genreService := catalogservice.New[domain.Genre, domain.GenreParams](genreRepo, pageSize)

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	walletHandler := walletdelivery.NewHandler(walletService)
	purchaseHandler := purchasedelivery.NewHandler(purchaseService)
	bookHandler := catalogdelivery.NewHandler(catalogdelivery.Resource[domain.Book, domain.BookParams]{
		Name:     "book",
		Plural:   "books",
		Service:  bookService,
		NotFound: domain.ErrBookNotFound,
	})
	authorHandler := catalogdelivery.NewHandler(catalogdelivery.Resource[domain.Author, domain.AuthorParams]{
		Name:     "author",
		Plural:   "authors",
		Service:  authorService,
		NotFound: domain.ErrAuthorNotFound,
	})
	genreHandler := catalogdelivery.NewHandler(catalogdelivery.Resource[domain.Genre, domain.GenreParams]{
		Name:     "genre",
		Plural:   "genres",
		Service:  genreService,
		NotFound: domain.ErrGenreNotFound,
	})

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(config.AllowedOrigins()))
	engine.Use(middleware.Metrics(metrics))

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	identified := engine.Group("", middleware.Identify(tokenMaker))

	// Catalog pages are public.
	identified.GET("/", catalogdelivery.Home(func(ctx context.Context) (domain.CatalogCounts, error) {
		return catalogservice.Counts(ctx, bookService, authorService, genreService)
	}))
	bookHandler.RegisterPages(identified)
	authorHandler.RegisterPages(identified)
	genreHandler.RegisterPages(identified)

	account := identified.Group("", middleware.Authorize(permission.Authenticated, metrics))
	account.GET("/profile", walletHandler.Profile)
	account.POST("/profile/topup", walletHandler.TopUp)
	account.GET("/buy", purchaseHandler.Buy)
	account.POST("/buy", purchaseHandler.Buy)

	api := identified.Group("/api", middleware.Authorize(permission.ReadOnlyOrSuperuser, metrics))
	bookHandler.RegisterAPI(api)
	authorHandler.RegisterAPI(api)
	genreHandler.RegisterAPI(api)

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
		Metrics:    metrics,
	}

	return server, nil
}
