package scheduler

import (
	"log"
	"time"

	"hqadmin-backend/internal/alert/usecase"
)

// ScanScheduler periodically runs the inventory scan pipeline
type ScanScheduler struct {
	scanUsecase usecase.ScanUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewScanScheduler creates a new scheduler
func NewScanScheduler(scanUsecase usecase.ScanUsecase, interval time.Duration) *ScanScheduler {
	return &ScanScheduler{
		scanUsecase: scanUsecase,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ScanScheduler) Start() {
	log.Printf("[Scheduler] Starting inventory scan scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ScanScheduler) Stop() {
	close(s.stopChan)
}

func (s *ScanScheduler) runOnce() {
	res, err := s.scanUsecase.ScanAll()
	if err != nil {
		log.Printf("[Scheduler] scan failed: %v", err)
		return
	}
	log.Printf("[Scheduler] scan done: stockLow=%d expireSoon=%d", res["stockLow"], res["expireSoon"])
}
