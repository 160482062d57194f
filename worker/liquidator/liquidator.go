package liquidator

import (
	"context"
	"errors"
	"time"

	"keeper/core"
	"keeper/worker"

	"github.com/fox-one/pkg/logger"
)

const (
	resultOK              = "ok"
	resultLockUnavailable = "lock_unavailable"
	resultNoSigner        = "no_signer"
	resultError           = "error"
)

// Liquidator run one liquidation cycle per tick
type Liquidator struct {
	worker.BaseJob
	liquidations core.LiquidationService
	metrics      *metrics
}

// New new liquidator worker
func New(location, spec string, liquidations core.LiquidationService) *Liquidator {
	w := &Liquidator{
		BaseJob:      worker.NewBaseJob("liquidator", location, spec),
		liquidations: liquidations,
		metrics:      newMetrics(),
	}

	w.OnWork = w.onWork
	return w
}

func (w *Liquidator) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	start := time.Now()
	liquidations, err := w.liquidations.Run(ctx)
	w.metrics.duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		w.metrics.cycles.WithLabelValues(resultOK).Inc()
		w.metrics.liquidations.Add(float64(len(liquidations)))
		return nil
	case errors.Is(err, core.ErrLockUnavailable):
		w.metrics.cycles.WithLabelValues(resultLockUnavailable).Inc()
		log.Infoln("liquidation lock held by another keeper")
		return nil
	case errors.Is(err, core.ErrNoSignerAvailable):
		w.metrics.cycles.WithLabelValues(resultNoSigner).Inc()
		log.Infoln("no signer available")
		return nil
	default:
		w.metrics.cycles.WithLabelValues(resultError).Inc()
		log.WithError(err).Errorln("liquidations.Run")
		return err
	}
}
