package di

import (
	"context"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"fm-server/api"
	"fm-server/api/mapbox"
	"fm-server/config"
	redisdao "fm-server/dao/redis"
	"fm-server/db"
	"fm-server/server"
	"fm-server/server/handlers"
	services "fm-server/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient               db.RedisClient
	RedisMapDao               *redisdao.RedisMapDAO
	MapboxAPI                 mapbox.MapboxAPI
	CityService               *services.CityService
	FilterEvaluator           *services.FilterEvaluator
	MapSession                *services.MapSession
	LocationsRefresherService *services.LocationsRefresherService
	LocationsImportService    *services.LocationsImportService
	MapHandler                *handlers.MapHandler
	MuxRouter                 *mux.Router
	Router                    *server.Router
	FamilyMapHttpServer       *server.FamilyMapHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	redisClient := db.NewGeoRedisClient(ctx, redisInternalClient)

	redisMapDao := redisdao.NewRedisMapDAO(redisClient)

	var mapboxApiClient mapbox.MapboxAPI
	if env != "prod" {
		mapboxApiClient = mapbox.NewMapboxApiClientMock()
		log.Printf("Using mock mapbox api")
	} else {
		log.Printf("Using prod mapbox api")
		httpClient := api.NewHTTPClient(config.MAPBOX_ENDPOINT_BASE)

		client := mapbox.NewMapboxApiClient(httpClient)
		client.SetAccessToken(config.GetMapboxAccessToken())
		mapboxApiClient = client
	}

	cityService := services.NewCityService(redisMapDao)
	filterEvaluator := services.NewFilterEvaluator()
	mapSession := services.NewMapSession(cityService)

	locationsRefresherService := services.NewLocationsRefresherService(redisMapDao)
	locationsImportService := services.NewLocationsImportService(mapboxApiClient, redisMapDao)

	mapHandler := handlers.NewMapHandler(mapSession, filterEvaluator, redisMapDao)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(mapHandler, muxRouter)
	familyMapHttpServer := server.NewFamilyMapHttpServer(router, muxRouter)

	return &Container{
		RedisClient:               redisClient,
		RedisMapDao:               redisMapDao,
		MapboxAPI:                 mapboxApiClient,
		CityService:               cityService,
		FilterEvaluator:           filterEvaluator,
		MapSession:                mapSession,
		LocationsRefresherService: locationsRefresherService,
		LocationsImportService:    locationsImportService,
		MapHandler:                mapHandler,
		MuxRouter:                 muxRouter,
		Router:                    router,
		FamilyMapHttpServer:       familyMapHttpServer,
	}
}
