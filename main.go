package main

import (
	"log"
	"os"
	"time"

	"fm-server/config"
	"fm-server/di"
)

func main() {
	container := di.NewContainer("prod")

	// "import" rebuilds the locations KML from the source CSV sheet and
	// exits; the normal path serves the map.
	if len(os.Args) > 1 && os.Args[1] == "import" {
		log.Println("importing locations from CSV!")
		err := container.LocationsImportService.ImportFromCSV(
			config.GetResourcePath(config.LOCATIONS_CSV_RESOURCE),
			config.GetResourcePath(config.LOCATIONS_KML_RESOURCE))
		if err != nil {
			log.Fatalf("locations import failed: %v", err)
		}
		return
	}

	log.Println("refreshing location markers!")
	if err := container.LocationsRefresherService.RefreshLocationsData(); err != nil {
		log.Printf("initial locations refresh failed: %v", err)
	}

	log.Println("starting periodic job!")
	container.LocationsRefresherService.StartPeriodicJob(config.LOCATIONS_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	log.Println("starting server!")
	container.FamilyMapHttpServer.Start()
}
