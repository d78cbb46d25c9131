package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/waveboard-app/waveboard-backend/blob"
	"github.com/waveboard-app/waveboard-backend/db"
	"github.com/waveboard-app/waveboard-backend/log"
	"github.com/waveboard-app/waveboard-backend/router"
	"github.com/waveboard-app/waveboard-backend/session"
)

const sessionTTL = 60 * 24 * time.Hour

func main() {
	_ = godotenv.Load()

	log.Info.Printf("Starting Waveboard Backend...\n")

	port := os.Getenv("PORT")
	if port == "" {
		log.Error.Fatalln("$PORT not set")
	}

	dbs, err := db.Init(db.Config{Driver: "postgres", DSN: os.Getenv("POSTGRES_URL")})
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Error.Fatalln("$REDIS_URL not set")
	}
	sessions, err := session.NewRedis(redisURL, sessionTTL)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	blobs, err := blob.NewDiskStore(uploadDir)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}

	r := router.Init(router.Deps{
		DB:        dbs,
		Sessions:  sessions,
		Blobs:     blobs,
		UploadDir: uploadDir,
	})

	err = http.ListenAndServe(fmt.Sprintf(":%s", port), r)

	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}
}
