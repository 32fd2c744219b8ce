package usecase

import (
	"errors"
	"testing"
	"time"

	"hqadmin-backend/internal/alert/suppress"
	invdomain "hqadmin-backend/internal/inventory/domain"
	pushdomain "hqadmin-backend/internal/push/domain"
	pushdto "hqadmin-backend/internal/push/dto"
	"hqadmin-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeScanner struct {
	stockLow   []invdomain.StockLowCandidate
	expireSoon []invdomain.ExpireSoonCandidate
	err        error
}

func (s *fakeScanner) FindStockLow(int) ([]invdomain.StockLowCandidate, error) {
	return s.stockLow, s.err
}

func (s *fakeScanner) FindExpireSoon(time.Time, int, int) ([]invdomain.ExpireSoonCandidate, error) {
	return s.expireSoon, s.err
}

type sentMessage struct {
	topic string
	title string
	body  string
	data  map[string]string
}

// fakePush records topic sends; failTopics makes sends to those topics fail
type fakePush struct {
	sent       []sentMessage
	failTopics map[string]bool
	renderErr  error
}

func (p *fakePush) RenderTitle(code string, vars map[string]interface{}) (string, error) {
	if p.renderErr != nil {
		return "", p.renderErr
	}
	return "title:" + code, nil
}

func (p *fakePush) RenderBody(code string, vars map[string]interface{}) (string, error) {
	if p.renderErr != nil {
		return "", p.renderErr
	}
	return "body:" + code, nil
}

func (p *fakePush) SendToTopic(_ pushdomain.AppType, topic, title, body string, data map[string]string) (string, error) {
	if p.failTopics[topic] {
		return "", errors.New("send failed")
	}
	p.sent = append(p.sent, sentMessage{topic: topic, title: title, body: body, data: data})
	return "msg-id", nil
}

func (p *fakePush) SendToToken(pushdomain.AppType, string, string, string, map[string]string) (string, error) {
	return "msg-id", nil
}

func (p *fakePush) RegisterToken(*pushdto.RegisterTokenRequest, string) error { return nil }
func (p *fakePush) UnregisterToken(string) error                              { return nil }
func (p *fakePush) SubscribeToTopic(string, string) error                     { return nil }
func (p *fakePush) UnsubscribeFromTopic(string, string) error                 { return nil }
func (p *fakePush) UpsertPreference(string, *pushdto.PreferenceUpdateRequest) (*pushdomain.Preference, error) {
	return nil, nil
}
func (p *fakePush) GetPreference(string) (*pushdomain.Preference, error) { return nil, nil }
func (p *fakePush) RecentLogs(int) ([]pushdomain.SendLog, error)         { return nil, nil }

func newScanFixture(scanner *fakeScanner, push *fakePush) ScanUsecase {
	cfg := &config.Config{
		StockLowMax:           50,
		ExpireSoonMax:         50,
		ExpireSoonDaysDefault: 3,
		SuppressTTL:           time.Hour,
	}
	return NewScanUsecase(scanner, push, suppress.NewMemorySuppressor(cfg.SuppressTTL), cfg)
}

// ---- tests ----

func TestScanStockLow_SendsOneAlertPerCandidate(t *testing.T) {
	scanner := &fakeScanner{stockLow: []invdomain.StockLowCandidate{
		{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
		{MaterialID: "m2", MaterialName: "Milk", Quantity: 1, Threshold: 10},
	}}
	push := &fakePush{}

	sent, err := newScanFixture(scanner, push).ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.Len(t, push.sent, 2)
	msg := push.sent[0]
	assert.Equal(t, pushdomain.TopicStockLow, msg.topic)
	assert.Equal(t, pushdomain.TemplateStockLow, msg.data["type"])
	assert.Equal(t, "Flour", msg.data["materialName"])
	assert.Equal(t, "/admin/inventory/list", msg.data["link"])
}

func TestScanStockLow_DispatchFailureDoesNotAbortScan(t *testing.T) {
	scanner := &fakeScanner{stockLow: []invdomain.StockLowCandidate{
		{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
		{MaterialID: "m2", MaterialName: "Milk", Quantity: 1, Threshold: 10},
	}}
	push := &fakePush{failTopics: map[string]bool{pushdomain.TopicStockLow: true}}

	sent, err := newScanFixture(scanner, push).ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestScanStockLow_RenderFailureSkipsCandidate(t *testing.T) {
	scanner := &fakeScanner{stockLow: []invdomain.StockLowCandidate{
		{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
	}}
	push := &fakePush{renderErr: pushdomain.ErrTemplateNotFound}

	sent, err := newScanFixture(scanner, push).ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, push.sent)
}

func TestScanStockLow_ScannerErrorIsRaised(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("db down")}
	_, err := newScanFixture(scanner, &fakePush{}).ScanAndNotifyStockLow()
	assert.Error(t, err)
}

func TestScanStockLow_RepeatScanIsSuppressed(t *testing.T) {
	scanner := &fakeScanner{stockLow: []invdomain.StockLowCandidate{
		{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
	}}
	push := &fakePush{}
	uc := newScanFixture(scanner, push)

	sent, err := uc.ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// Second scan sees the same candidate but does not re-alert
	sent, err = uc.ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, push.sent, 1)
}

func TestScanStockLow_FailedSendIsNotSuppressed(t *testing.T) {
	scanner := &fakeScanner{stockLow: []invdomain.StockLowCandidate{
		{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
	}}
	push := &fakePush{failTopics: map[string]bool{pushdomain.TopicStockLow: true}}
	uc := newScanFixture(scanner, push)

	_, err := uc.ScanAndNotifyStockLow()
	require.NoError(t, err)

	// The send recovers; the candidate must still alert
	push.failTopics = nil
	sent, err := uc.ScanAndNotifyStockLow()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestScanExpireSoon_SendsLotDetails(t *testing.T) {
	scanner := &fakeScanner{expireSoon: []invdomain.ExpireSoonCandidate{
		{MaterialID: "m1", MaterialName: "Cream", LotCode: "L-7", DaysLeft: 2},
	}}
	push := &fakePush{}

	sent, err := newScanFixture(scanner, push).ScanAndNotifyExpireSoon()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, push.sent, 1)
	msg := push.sent[0]
	assert.Equal(t, pushdomain.TopicExpireSoon, msg.topic)
	assert.Equal(t, pushdomain.TemplateExpireSoon, msg.data["type"])
	assert.Equal(t, "2", msg.data["days"])
	assert.Equal(t, "L-7", msg.data["lot"])
}

func TestScanExpireSoon_MissingLotCodeOmittedFromData(t *testing.T) {
	scanner := &fakeScanner{expireSoon: []invdomain.ExpireSoonCandidate{
		{MaterialID: "m1", MaterialName: "Cream", DaysLeft: 1},
	}}
	push := &fakePush{}

	_, err := newScanFixture(scanner, push).ScanAndNotifyExpireSoon()
	require.NoError(t, err)
	require.Len(t, push.sent, 1)
	_, hasLot := push.sent[0].data["lot"]
	assert.False(t, hasLot)
}

func TestScanExpireSoon_SuppressionIsPerLot(t *testing.T) {
	scanner := &fakeScanner{expireSoon: []invdomain.ExpireSoonCandidate{
		{MaterialID: "m1", MaterialName: "Cream", LotCode: "L-1", DaysLeft: 1},
	}}
	push := &fakePush{}
	uc := newScanFixture(scanner, push)

	_, err := uc.ScanAndNotifyExpireSoon()
	require.NoError(t, err)

	// A different lot of the same material is a new candidate
	scanner.expireSoon = []invdomain.ExpireSoonCandidate{
		{MaterialID: "m1", MaterialName: "Cream", LotCode: "L-2", DaysLeft: 1},
	}
	sent, err := uc.ScanAndNotifyExpireSoon()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestScanAll_CombinesCounts(t *testing.T) {
	scanner := &fakeScanner{
		stockLow: []invdomain.StockLowCandidate{
			{MaterialID: "m1", MaterialName: "Flour", Quantity: 5, Threshold: 20},
		},
		expireSoon: []invdomain.ExpireSoonCandidate{
			{MaterialID: "m2", MaterialName: "Cream", LotCode: "L-1", DaysLeft: 1},
			{MaterialID: "m3", MaterialName: "Milk", LotCode: "L-2", DaysLeft: 2},
		},
	}
	push := &fakePush{}

	counts, err := newScanFixture(scanner, push).ScanAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"stockLow": 1, "expireSoon": 2}, counts)
}

func TestSendMorningReminder_TargetsCommonTopic(t *testing.T) {
	push := &fakePush{}
	newScanFixture(&fakeScanner{}, push).SendMorningReminder()

	require.Len(t, push.sent, 1)
	assert.Equal(t, pushdomain.TopicHQAll, push.sent[0].topic)
	assert.Equal(t, "HQ_REMINDER", push.sent[0].data["type"])
}
