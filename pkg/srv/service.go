package srv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/ferpy/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices runs every service in its own goroutine. When any service
// returns, stop is called and the rest are shut down too.
func StartServices(ctx context.Context, stop context.CancelFunc, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			err := service.Start(ctx)
			switch {
			case err == nil, errors.Is(err, context.Canceled):
				logger.Debug().Str("service", name(service)).Msg("stopped")
			default:
				logger.Error().Err(err).Str("service", name(service)).Msg("failed")
			}
			if stop != nil {
				stop()
			}
		}(service)
	}
}

func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	// Reverse order: resources opened first are closed last.
	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		if err := service.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("service", name(service)).Msg("failed to shutdown")
		}
	}
}

func name(s Service) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
