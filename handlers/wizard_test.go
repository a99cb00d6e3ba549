package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/wizard"
	"skybook/utils"
)

// fakeWizardService records calls and returns canned results.
type fakeWizardService struct {
	mu          sync.Mutex
	sess        *models.WizardSession
	submitRes   *wizard.SubmitResult
	err         error
	cardUpdates []models.CardDetails
	statuses    map[string]string
}

func (f *fakeWizardService) result() (*models.WizardSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sess, nil
}

func (f *fakeWizardService) StartSession(context.Context, string) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) GetSession(context.Context, string) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) CancelSession(context.Context, string) error { return f.err }

func (f *fakeWizardService) UpdateItinerary(context.Context, string, models.ItineraryForm) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) UpdatePassengers(context.Context, string, models.PassengersForm) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) UpdateExtras(context.Context, string, wizard.ExtrasUpdate) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) UpdatePayment(context.Context, string, models.PaymentForm) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) UpdateCardDetails(_ context.Context, _ string, details models.CardDetails) (*models.WizardSession, error) {
	f.mu.Lock()
	f.cardUpdates = append(f.cardUpdates, details)
	f.mu.Unlock()
	return f.result()
}

func (f *fakeWizardService) AddBillingPhone(context.Context, string, int) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) RemoveBillingPhone(context.Context, string, int, int) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) Advance(context.Context, string) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) Retreat(context.Context, string) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) JumpTo(context.Context, string, int) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) ResetStep(context.Context, string, int) (*models.WizardSession, error) {
	return f.result()
}

func (f *fakeWizardService) Submit(context.Context, string) (*wizard.SubmitResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.submitRes, nil
}

func (f *fakeWizardService) CreateBooking(context.Context, models.BookingRequest) (*wizard.SubmitResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.submitRes, nil
}

func (f *fakeWizardService) MarkPaymentStatus(_ context.Context, bookingToken, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = make(map[string]string)
	}
	f.statuses[bookingToken] = status
	return f.err
}

func newTestRouter(svc *fakeWizardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWizardHandler(svc, zap.NewNop())
	// Short quiet period so debounced edits land within the test.
	h.Debounce = utils.NewDebouncer(10 * time.Millisecond)
	p := NewPaymentHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/wizard/:token/session", h.StartSession)
	s := r.Group("/api/wizard/session/:sessionID")
	{
		s.GET("", h.GetSession)
		s.PUT("/itinerary", h.UpdateItinerary)
		s.PATCH("/payment/details", h.UpdateCardDetails)
		s.POST("/advance", h.Advance)
		s.POST("/submit", h.Submit)
	}
	r.POST("/api/payment/callback", p.GatewayCallback)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleSession() *models.WizardSession {
	return &models.WizardSession{
		SessionID:   "sess-1",
		Token:       "tok-123",
		Steps:       wizard.NewSteps(),
		CurrentStep: models.StepItinerary,
	}
}

func TestStartSessionEndpoint(t *testing.T) {
	svc := &fakeWizardService{sess: sampleSession()}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/wizard/tok-123/session", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var got models.WizardSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Len(t, got.Steps, 5)
}

func TestStartSessionUnknownTemplate(t *testing.T) {
	svc := &fakeWizardService{err: wizard.ErrTemplateNotFound}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/wizard/nope/session", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSessionExpired(t *testing.T) {
	svc := &fakeWizardService{err: wizard.ErrSessionNotFound}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/wizard/session/sess-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestUpdateItineraryRejectsMalformedBody(t *testing.T) {
	svc := &fakeWizardService{sess: sampleSession()}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPut, "/api/wizard/session/sess-1/itinerary", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvanceInvalidStep(t *testing.T) {
	svc := &fakeWizardService{err: wizard.ErrStepNotValid}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/wizard/session/sess-1/advance", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateCardDetailsDebounced(t *testing.T) {
	svc := &fakeWizardService{sess: sampleSession()}
	r := newTestRouter(svc)

	// A burst of per-keystroke edits: each accepted immediately.
	for _, num := range []string{"4", "41", "411"} {
		w := doRequest(r, http.MethodPatch, "/api/wizard/session/sess-1/payment/details",
			`{"cardNumber":"`+num+`"}`)
		assert.Equal(t, http.StatusAccepted, w.Code)
	}

	time.Sleep(60 * time.Millisecond)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.cardUpdates, 1, "burst collapses to one update")
	assert.Equal(t, "411", svc.cardUpdates[0].CardNumber)
}

func TestSubmitEndpoint(t *testing.T) {
	svc := &fakeWizardService{submitRes: &wizard.SubmitResult{
		BookingToken:  "bk-1",
		TotalPrice:    821.20,
		PaymentMethod: models.PaymentMethodCrypto,
		RedirectURL:   "https://gateway.test/invoice/1",
	}}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/wizard/session/sess-1/submit", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool                `json:"success"`
		Data    wizard.SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "bk-1", envelope.Data.BookingToken)
	assert.Equal(t, "https://gateway.test/invoice/1", envelope.Data.RedirectURL)
}

func TestSubmitInvoiceFailure(t *testing.T) {
	svc := &fakeWizardService{err: wizard.ErrInvoiceCreation}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/wizard/session/sess-1/submit", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGatewayCallback(t *testing.T) {
	t.Run("success marks booking confirmed", func(t *testing.T) {
		svc := &fakeWizardService{}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/callback?booking_token=bk-1&status=success&json=true", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusConfirmed, svc.statuses["bk-1"])
	})

	t.Run("fail marks booking payment_failed", func(t *testing.T) {
		svc := &fakeWizardService{}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/callback?booking_token=bk-1&status=fail&json=true", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusPaymentFailed, svc.statuses["bk-1"])
	})

	t.Run("interim notification is acknowledged untouched", func(t *testing.T) {
		svc := &fakeWizardService{}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/callback?booking_token=bk-1&json=true", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, svc.statuses)
	})

	t.Run("missing booking token rejected", func(t *testing.T) {
		svc := &fakeWizardService{}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/callback?status=success", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
