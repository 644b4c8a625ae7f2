package workers

import (
	"context"
	"time"

	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/services"
)

// SweepWorker периодически снимает из выдачи вакансии с истекшим
// сроком жизни и сбрасывает просроченные закрепления. Обе операции
// идемпотентны, поэтому интервал можно менять без риска.
type SweepWorker struct {
	vacancies *services.VacancyService
	interval  time.Duration
}

func NewSweepWorker(vacancies *services.VacancyService, interval time.Duration) *SweepWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SweepWorker{vacancies: vacancies, interval: interval}
}

// Start запускает фоновый цикл зачистки
func (w *SweepWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SweepWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// первый проход сразу при старте, не дожидаясь тикера
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Sweep worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SweepWorker) sweep(ctx context.Context) {
	expired, err := w.vacancies.DeactivateExpired(ctx)
	logger.WorkerLog("sweep", "deactivate_expired", err)
	if err == nil && expired > 0 {
		logger.Info("Deactivated expired vacancies", "count", expired)
	}

	pins, err := w.vacancies.ResetExpiredPins(ctx)
	logger.WorkerLog("sweep", "reset_expired_pins", err)
	if err == nil && pins > 0 {
		logger.Info("Cleared expired pins", "count", pins)
	}
}
