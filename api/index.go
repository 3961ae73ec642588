package handler

import (
	"net/http"
	"sync"

	"solireserve/config"
	"solireserve/di"
	"solireserve/shared/logger"
	serverHTTP "solireserve/transport/http"
	"solireserve/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	server  *serverHTTP.HTTP
	initErr error
	once    sync.Once
)

// Handler is the serverless entrypoint; the service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithUnhealthy(w)

		return
	}

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
