// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/service"
)

// bootstrapAdminWorker ensures the default administrator account exists at
// startup. Failures are logged and swallowed: a missing admin account must
// never prevent the server from serving traffic.
type bootstrapAdminWorker struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewBootstrapAdminWorker constructs the admin bootstrap startup worker.
func NewBootstrapAdminWorker(authService service.AuthService, logger *logger.Logger) Worker {
	return &bootstrapAdminWorker{
		authService: authService,
		logger:      logger,
	}
}

func (w *bootstrapAdminWorker) Run() {
	ctx := w.logger.WithContext(context.Background())

	if err := w.authService.BootstrapAdmin(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("admin bootstrap failed")
		return
	}

	w.logger.Debug().Msg("admin bootstrap finished")
}
