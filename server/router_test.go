package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// mockMapRoutes records which handler the router dispatched to.
type mockMapRoutes struct {
	called string
}

func (m *mockMapRoutes) handle(name string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		m.called = name
		w.WriteHeader(http.StatusOK)
	}
}

func (m *mockMapRoutes) GetMapPage(w http.ResponseWriter, r *http.Request) {
	m.handle("GetMapPage")(w, r)
}
func (m *mockMapRoutes) GetMapState(w http.ResponseWriter, r *http.Request) {
	m.handle("GetMapState")(w, r)
}
func (m *mockMapRoutes) GetFeatures(w http.ResponseWriter, r *http.Request) {
	m.handle("GetFeatures")(w, r)
}
func (m *mockMapRoutes) GetLocations(w http.ResponseWriter, r *http.Request) {
	m.handle("GetLocations")(w, r)
}
func (m *mockMapRoutes) GetLocationsNearby(w http.ResponseWriter, r *http.Request) {
	m.handle("GetLocationsNearby")(w, r)
}
func (m *mockMapRoutes) GetPreview(w http.ResponseWriter, r *http.Request) {
	m.handle("GetPreview")(w, r)
}
func (m *mockMapRoutes) Ping(w http.ResponseWriter, r *http.Request) {
	m.handle("Ping")(w, r)
}

func TestRegisterRoutes_Dispatch(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
		status int
	}{
		{"GET", "/", "GetMapPage", http.StatusOK},
		{"GET", "/v1/map/state", "GetMapState", http.StatusOK},
		{"GET", "/v1/map/features", "GetFeatures", http.StatusOK},
		{"GET", "/v1/map/locations", "GetLocations", http.StatusOK},
		{"GET", "/v1/map/locations/nearby", "GetLocationsNearby", http.StatusOK},
		{"GET", "/v1/map/preview", "GetPreview", http.StatusOK},
		{"GET", "/ping", "Ping", http.StatusOK},
		{"POST", "/v1/map/state", "", http.StatusMethodNotAllowed},
		{"GET", "/v1/map/unknown", "", http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.method+" "+test.path, func(t *testing.T) {
			handler := &mockMapRoutes{}
			muxRouter := mux.NewRouter()
			NewRouter(handler, muxRouter).RegisterRoutes()

			req := httptest.NewRequest(test.method, test.path, nil)
			rec := httptest.NewRecorder()
			muxRouter.ServeHTTP(rec, req)

			assert.Equal(t, test.status, rec.Code)
			assert.Equal(t, test.want, handler.called)
		})
	}
}
