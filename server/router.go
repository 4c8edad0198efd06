package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// MapRoutes is the handler surface the router binds.
type MapRoutes interface {
	GetMapPage(w http.ResponseWriter, r *http.Request)
	GetMapState(w http.ResponseWriter, r *http.Request)
	GetFeatures(w http.ResponseWriter, r *http.Request)
	GetLocations(w http.ResponseWriter, r *http.Request)
	GetLocationsNearby(w http.ResponseWriter, r *http.Request)
	GetPreview(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	mapHandler MapRoutes
	router     *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	mapHandler MapRoutes,
	router *mux.Router) *Router {
	return &Router{
		mapHandler: mapHandler,
		router:     router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/", r.mapHandler.GetMapPage).Methods("GET")

	// expects the page query params: ?city=&locations=&filter250k=&filter500k=&buckets=
	r.router.HandleFunc("/v1/map/state", r.mapHandler.GetMapState).Methods("GET")
	r.router.HandleFunc("/v1/map/features", r.mapHandler.GetFeatures).Methods("GET")
	r.router.HandleFunc("/v1/map/locations", r.mapHandler.GetLocations).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius(float)}
	r.router.HandleFunc("/v1/map/locations/nearby", r.mapHandler.GetLocationsNearby).Methods("GET")

	r.router.HandleFunc("/v1/map/preview", r.mapHandler.GetPreview).Methods("GET")
	r.router.HandleFunc("/ping", r.mapHandler.Ping).Methods("GET")
}
