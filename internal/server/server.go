package server

import (
	"fmt"
	"net/http"
	"time"

	"clearance/internal/config"
	"clearance/internal/controller"
)

type Server struct {
	sc     controller.ServerController
	jc     controller.JobController
	ec     controller.ExportController
	config config.Config
}

func NewServer(config config.Config, sc controller.ServerController, jc controller.JobController, ec controller.ExportController) *Server {
	return &Server{
		sc:     sc,
		jc:     jc,
		ec:     ec,
		config: config,
	}
}

func New(config config.Config, sc controller.ServerController, jc controller.JobController, ec controller.ExportController) *http.Server {
	server := NewServer(config, sc, jc, ec)

	// listings and exports may wait on the store for the full query timeout
	writeTimeout := time.Duration(config.Jobs.QueryTimeoutSeconds)*time.Second + 30*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf(":%v", config.Port),
		Handler:      server.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
	}
}
