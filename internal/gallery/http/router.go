package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/blushhq/blush/internal/gallery/mailer"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/internal/gallery/store"
	"github.com/blushhq/blush/pkg/httpx"
	"github.com/blushhq/blush/pkg/slogx"

	_ "github.com/blushhq/blush/api/gallery" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	OTPService     *service.OTPService
	SessionService *service.SessionService
	AlbumService   *service.AlbumService
	MediaService   *service.MediaService
	StorageService *service.StorageService
	Mailer         mailer.Sender
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAlbums()
	r.registerMedia()
	r.registerStorage()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Blush Gallery API
//	@version		0.1.0
//	@description	Private photo gallery with email-code sign-in. Sessions are
//	@description	stateless signed bearer tokens; logout revokes a token for
//	@description	its remaining lifetime.
//
//	@contact.name				Blush Team
//	@contact.url				https://github.com/blushhq/blush
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// session builds the middleware guarding authenticated routes on top of the
// session authority.
func (r *Router) session() httpx.Middleware {
	return httpx.SessionMiddleware(func(token string) (httpx.Identity, bool) {
		sess := r.SessionService.Resolve(token)
		if sess == nil {
			return httpx.Identity{}, false
		}
		return httpx.Identity{
			Token:     sess.Token,
			Email:     sess.Email,
			UserID:    sess.UserID,
			IssuedAt:  sess.CreatedAt,
			ExpiresAt: sess.ExpiresAt,
		}, true
	})
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		OTPService:     r.OTPService,
		SessionService: r.SessionService,
		Mailer:         r.Mailer,
	}

	// Both code endpoints get the strict IP limit on top of the manager's
	// own per-email cooldown and attempt budget.
	r.Mux.Handle("POST /v1/auth/request-code",
		httpx.Chain(http.HandlerFunc(h.HandleRequestCode),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.session(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Logout takes the raw bearer token, not a resolved session, so an
	// expired token can still be revoked.
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAlbums() {
	h := &AlbumsHandler{
		AlbumService: r.AlbumService,
		MediaService: r.MediaService,
		Storage:      r.StorageService,
	}

	r.Mux.Handle("GET /v1/albums",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.session(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/albums",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.session(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/albums/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.session(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/albums/{id}/media",
		httpx.Chain(http.HandlerFunc(h.HandleListMedia),
			r.session(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMedia() {
	h := &MediaHandler{
		MediaService: r.MediaService,
		Storage:      r.StorageService,
	}

	r.Mux.Handle("POST /v1/media",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.session(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/feed",
		httpx.Chain(http.HandlerFunc(h.HandleFeed),
			r.session(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerStorage() {
	h := &StorageHandler{Storage: r.StorageService}

	r.Mux.Handle("POST /v1/storage/signed-upload",
		httpx.Chain(http.HandlerFunc(h.HandleSignUpload),
			r.session(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// The signed URL itself is the credential on these two; no session.
	r.Mux.Handle("PUT /v1/storage/upload/{path...}",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/storage/file/{path...}",
		httpx.Chain(http.HandlerFunc(h.HandleFile),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
