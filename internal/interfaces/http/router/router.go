package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. API routes live under /api,
// admin routes under /api/admin behind the given admin middleware.
type Router struct {
	engine          *gin.Engine
	registrars      []RouteRegistrar
	adminRegistrars []RouteRegistrar
	adminGuards     []gin.HandlerFunc
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register adds a RouteRegistrar for the /api group
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterAdmin adds a RouteRegistrar for the /api/admin group
func (r *Router) RegisterAdmin(registrar RouteRegistrar) *Router {
	r.adminRegistrars = append(r.adminRegistrars, registrar)
	return r
}

// UseAdminGuards sets middleware applied to the /api/admin group
func (r *Router) UseAdminGuards(guards ...gin.HandlerFunc) *Router {
	r.adminGuards = append(r.adminGuards, guards...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(r.adminGuards...)
	for _, registrar := range r.adminRegistrars {
		registrar.RegisterRoutes(admin)
	}
}
