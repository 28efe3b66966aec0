package workers

import (
	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the startup workers of the application. The admin
// bootstrap runs first so that the default account exists before traffic is
// accepted.
func NewWorkers(services *service.Services, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewBootstrapAdminWorker(services.AuthService, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
