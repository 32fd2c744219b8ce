package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanUsecase struct {
	stockLow   int
	expireSoon int
	err        error
}

func (s *stubScanUsecase) ScanAndNotifyStockLow() (int, error)   { return s.stockLow, s.err }
func (s *stubScanUsecase) ScanAndNotifyExpireSoon() (int, error) { return s.expireSoon, s.err }
func (s *stubScanUsecase) ScanAll() (map[string]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]int{"stockLow": s.stockLow, "expireSoon": s.expireSoon}, nil
}
func (s *stubScanUsecase) SendMorningReminder() {}

func setupRouter(uc *stubScanUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewScanHandler(uc)

	r := gin.New()
	r.POST("/hq-scan/run", h.RunAll)
	r.POST("/hq-scan/stock-low", h.RunStockLow)
	r.POST("/hq-scan/expire-soon", h.RunExpireSoon)
	r.POST("/hq-scan/reminder", h.SendReminder)
	return r
}

func TestRunAll_ReturnsCombinedCounts(t *testing.T) {
	r := setupRouter(&stubScanUsecase{stockLow: 2, expireSoon: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hq-scan/run", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]int{"stockLow": 2, "expireSoon": 1}, body)
}

func TestRunStockLow_ReturnsSentCount(t *testing.T) {
	r := setupRouter(&stubScanUsecase{stockLow: 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hq-scan/stock-low", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sent": 3}`, w.Body.String())
}

func TestSendReminder_AlwaysOK(t *testing.T) {
	r := setupRouter(&stubScanUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hq-scan/reminder", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunExpireSoon_ScanErrorIs500(t *testing.T) {
	r := setupRouter(&stubScanUsecase{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hq-scan/expire-soon", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
