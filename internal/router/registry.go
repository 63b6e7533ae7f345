package router

import "github.com/gin-gonic/gin"

// APIPrefix is where every module is mounted.
const APIPrefix = "/api/v1"

// Module is a feature area that mounts its routes under the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and group middleware, then mounts them in one
// pass so middleware applies to every module regardless of Add order.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	middlewares []gin.HandlerFunc
	modules     []Module
	mounted     bool
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) { r.middlewares = append(r.middlewares, mw...) }

func (r *Registry) Add(mod Module) { r.modules = append(r.modules, mod) }

// RegisterAll mounts everything added so far. Later calls are no-ops;
// gin panics on duplicate routes.
func (r *Registry) RegisterAll() {
	if r.mounted {
		return
	}
	r.mounted = true
	r.API.Use(r.middlewares...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
