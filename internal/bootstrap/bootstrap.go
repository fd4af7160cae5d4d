package bootstrap

import (
	"context"
	"fmt"

	"btcwidget-service/internal/application"
	httpserver "btcwidget-service/internal/infrastructure/http"
)

// InitAPI builds the HTTP server. With WORKER_TYPE=inproc the returned worker
// must be started alongside it; otherwise it is nil.
func InitAPI(ctx context.Context) (*httpserver.Server, application.Worker, Components, func(), error) {
	c, cleanup, err := buildComponents(ctx)
	if err != nil {
		return nil, nil, Components{}, cleanup, fmt.Errorf("init api: %w", err)
	}
	var w application.Worker
	if c.Config.WorkerType == "inproc" {
		w = ProvideWorker(c.Service, c.Log)
	}
	return httpserver.NewServer(c.Service), w, c, cleanup, nil
}

// InitWorker builds the standalone refresh worker.
func InitWorker(ctx context.Context) (application.Worker, func(), error) {
	c, cleanup, err := buildComponents(ctx)
	if err != nil {
		return nil, cleanup, fmt.Errorf("init worker: %w", err)
	}
	return ProvideWorker(c.Service, c.Log), cleanup, nil
}
