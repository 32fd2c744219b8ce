package usecase

import (
	"log"
	"strconv"
	"time"

	"hqadmin-backend/internal/alert/suppress"
	invrepo "hqadmin-backend/internal/inventory/repository"
	pushdomain "hqadmin-backend/internal/push/domain"
	pushusecase "hqadmin-backend/internal/push/usecase"
	"hqadmin-backend/pkg/config"
)

const inventoryListLink = "/admin/inventory/list"

// ScanUsecase runs the scan-evaluate-notify pipeline: fetch candidates,
// render templates, dispatch to the rule's HQ topic. Individual dispatch
// failures are isolated per candidate.
type ScanUsecase interface {
	ScanAndNotifyStockLow() (int, error)
	ScanAndNotifyExpireSoon() (int, error)
	ScanAll() (map[string]int, error)
	SendMorningReminder()
}

type scanUsecase struct {
	scanner    invrepo.ScannerRepository
	push       pushusecase.PushUsecase
	suppressor suppress.Suppressor
	cfg        *config.Config
}

// NewScanUsecase creates a new instance of scanUsecase
func NewScanUsecase(
	scanner invrepo.ScannerRepository,
	push pushusecase.PushUsecase,
	suppressor suppress.Suppressor,
	cfg *config.Config,
) ScanUsecase {
	return &scanUsecase{
		scanner:    scanner,
		push:       push,
		suppressor: suppressor,
		cfg:        cfg,
	}
}

// ScanAndNotifyStockLow scans HQ inventory for materials below their
// effective threshold and sends one alert per candidate to the stock-low
// topic. Returns the number of successful sends; candidate failures are
// logged and skipped.
func (u *scanUsecase) ScanAndNotifyStockLow() (int, error) {
	rows, err := u.scanner.FindStockLow(u.cfg.StockLowMax)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range rows {
		if u.suppressor.AlreadyAlerted(pushdomain.TemplateStockLow, r.MaterialID) {
			continue
		}

		vars := map[string]interface{}{
			"materialName": r.MaterialName,
			"qty":          formatQuantity(r.Quantity),
			"threshold":    formatQuantity(r.Threshold),
		}
		title, err := u.push.RenderTitle(pushdomain.TemplateStockLow, vars)
		if err != nil {
			log.Printf("[HQ-Scanner] STOCK_LOW render failed: %v", err)
			continue
		}
		body, err := u.push.RenderBody(pushdomain.TemplateStockLow, vars)
		if err != nil {
			log.Printf("[HQ-Scanner] STOCK_LOW render failed: %v", err)
			continue
		}

		data := map[string]string{
			"type":         pushdomain.TemplateStockLow,
			"materialName": r.MaterialName,
			"link":         inventoryListLink,
		}

		if _, err := u.push.SendToTopic(pushdomain.AppHQ, pushdomain.TopicStockLow, title, body, data); err != nil {
			log.Printf("[HQ-Scanner] STOCK_LOW send failed: %v", err)
			continue
		}
		u.suppressor.MarkAlerted(pushdomain.TemplateStockLow, r.MaterialID)
		sent++
	}

	log.Printf("[HQ-Scanner] STOCK_LOW candidates=%d, sent=%d", len(rows), sent)
	return sent, nil
}

// ScanAndNotifyExpireSoon scans HQ-held lots expiring inside the configured
// window and sends one alert per candidate to the expire-soon topic.
func (u *scanUsecase) ScanAndNotifyExpireSoon() (int, error) {
	days := u.cfg.ExpireSoonDaysDefault
	if days < 1 {
		days = 1
	}
	today := time.Now()

	rows, err := u.scanner.FindExpireSoon(today, days, u.cfg.ExpireSoonMax)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range rows {
		suppressKey := r.MaterialID + ":" + r.LotCode
		if u.suppressor.AlreadyAlerted(pushdomain.TemplateExpireSoon, suppressKey) {
			continue
		}

		lot := r.LotCode
		if lot == "" {
			lot = "-"
		}
		vars := map[string]interface{}{
			"materialName": r.MaterialName,
			"days":         r.DaysLeft,
			"lot":          lot,
		}
		title, err := u.push.RenderTitle(pushdomain.TemplateExpireSoon, vars)
		if err != nil {
			log.Printf("[HQ-Scanner] EXPIRE_SOON render failed: %v", err)
			continue
		}
		body, err := u.push.RenderBody(pushdomain.TemplateExpireSoon, vars)
		if err != nil {
			log.Printf("[HQ-Scanner] EXPIRE_SOON render failed: %v", err)
			continue
		}

		data := map[string]string{
			"type":         pushdomain.TemplateExpireSoon,
			"materialName": r.MaterialName,
			"days":         strconv.Itoa(r.DaysLeft),
			"link":         inventoryListLink,
		}
		if r.LotCode != "" {
			data["lot"] = r.LotCode
		}

		if _, err := u.push.SendToTopic(pushdomain.AppHQ, pushdomain.TopicExpireSoon, title, body, data); err != nil {
			log.Printf("[HQ-Scanner] EXPIRE_SOON send failed: %v", err)
			continue
		}
		u.suppressor.MarkAlerted(pushdomain.TemplateExpireSoon, suppressKey)
		sent++
	}

	log.Printf("[HQ-Scanner] EXPIRE_SOON candidates=%d, sent=%d", len(rows), sent)
	return sent, nil
}

// ScanAll runs both rule types and returns the combined counts
func (u *scanUsecase) ScanAll() (map[string]int, error) {
	stockLow, err := u.ScanAndNotifyStockLow()
	if err != nil {
		return nil, err
	}
	expireSoon, err := u.ScanAndNotifyExpireSoon()
	if err != nil {
		return nil, err
	}
	return map[string]int{"stockLow": stockLow, "expireSoon": expireSoon}, nil
}

// SendMorningReminder nudges the HQ common topic to review inventory and
// notices. Failures are logged only.
func (u *scanUsecase) SendMorningReminder() {
	data := map[string]string{"type": "HQ_REMINDER", "link": "/admin/dashboard"}
	_, err := u.push.SendToTopic(pushdomain.AppHQ, pushdomain.TopicHQAll,
		"[HQ] Morning reminder", "Please review today's inventory and notices.", data)
	if err != nil {
		log.Printf("[HQ-Scanner] morning reminder failed: %v", err)
	}
}

// formatQuantity renders quantities without a trailing ".0" for whole values
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
