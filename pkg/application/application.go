package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partlane/partlane/pkg/eventbus"
)

// Controller is a self-registering group of HTTP routes.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a vertical slice (repositories, services, controllers,
// event handlers) into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the composition root: it owns the database pool, the event
// publisher and the registries the HTTP server is built from.
type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
}

func New(pool *pgxpool.Pool, publisher eventbus.EventBus) Application {
	return &application{
		pool:        pool,
		publisher:   publisher,
		services:    map[reflect.Type]interface{}{},
		controllers: map[string]Controller{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	publisher   eventbus.EventBus
	services    map[reflect.Type]interface{}
	controllers map[string]Controller
	keys        []string
	middleware  []mux.MiddlewareFunc
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.publisher
}

func (app *application) Controllers() []Controller {
	out := make([]Controller, 0, len(app.keys))
	for _, key := range app.keys {
		out = append(out, app.controllers[key])
	}
	return out
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, ok := app.controllers[c.Key()]; !ok {
			app.keys = append(app.keys, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterServices(services ...interface{}) {
	for _, s := range services {
		app.services[reflect.TypeOf(s).Elem()] = s
	}
}

// Service returns the registered service matching the type of the given
// zero value. Panics if the service was never registered.
func (app *application) Service(service interface{}) interface{} {
	svc, ok := app.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %T is not registered", service))
	}
	return svc
}
