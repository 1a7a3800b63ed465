package filing

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erigateway/internal/admin"
	"erigateway/internal/audit"
	authadapters "erigateway/internal/auth/adapters"
	authhandler "erigateway/internal/auth/handler"
	authmodels "erigateway/internal/auth/models"
	authservice "erigateway/internal/auth/service"
	sessionstore "erigateway/internal/auth/store"
	"erigateway/internal/envelope"
	"erigateway/internal/filing"
	filinghandler "erigateway/internal/filing/handler"
	"erigateway/internal/filing/models"
	filingservice "erigateway/internal/filing/service"
	filingstore "erigateway/internal/filing/store"
	"erigateway/internal/health"
	"erigateway/internal/platform/logger"
	"erigateway/internal/platform/metrics"
	httptransport "erigateway/internal/transport/http"
	"erigateway/pkg/testutil"
)

const adminToken = "ops-secret"

var ackPattern = regexp.MustCompile(`^\d{14}$`)

// gateway is the fully wired router plus the sinks a test may inspect.
type gateway struct {
	http.Handler
	logs  *bytes.Buffer
	audit *audit.InMemoryStore
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	logs := &bytes.Buffer{}
	log := logger.NewWithWriter(logs, "production", "debug")
	m := metrics.New()
	auditStore := audit.NewInMemoryStore(0)
	publisher := audit.NewPublisher(auditStore, log)
	codec := envelope.NewCodec(envelope.LengthVerifier{MinLength: 20})

	authSvc := authservice.New(sessionstore.New(),
		authservice.Config{TestClientID: "ERI_TEST_CLIENT", SessionTTL: 24 * time.Hour},
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(publisher),
		authservice.WithMetrics(m),
	)
	filingSvc := filingservice.New(
		filingservice.Stores{
			Clients:     filingstore.NewRegistry[models.ClientMapping]("client"),
			Validations: filingstore.NewRegistry[models.Validation]("validation"),
			Drafts:      filingstore.NewRegistry[models.Draft]("draft"),
			Submissions: filingstore.NewRegistry[models.Submission]("submission"),
		},
		filingservice.Config{PortalBaseURL: "https://portal.example"},
		filingservice.WithLogger(log),
		filingservice.WithAuditPublisher(publisher),
		filingservice.WithMetrics(m),
	)

	router := httptransport.NewRouter(log, m,
		health.New(authSvc, filingSvc, httptransport.ProtocolEndpoints, health.TestCredentials{ClientID: "ERI_TEST_CLIENT"}, log),
		authhandler.New(authSvc, codec, log),
		filinghandler.New(filingSvc, codec, authadapters.NewSessionValidator(authSvc), log),
		admin.New(auditStore, adminToken, log),
	)
	return &gateway{Handler: router, logs: logs, audit: auditStore}
}

func login(t *testing.T, gw http.Handler) string {
	t.Helper()
	rr := testutil.DoRequest(gw, testutil.NewEnvelopeRequest(t, authhandler.LoginPath, "", map[string]string{
		"clientId":     "ERI_TEST_CLIENT",
		"clientSecret": "test_secret_123",
		"eriUserId":    "test_user",
		"eriPassword":  "test_pass",
	}))
	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[authmodels.LoginResponse](t, rr)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func call(t *testing.T, gw http.Handler, path, sessionID string, payload any) *testResponse {
	t.Helper()
	rr := testutil.DoRequest(gw, testutil.NewEnvelopeRequest(t, path, sessionID, payload))
	return &testResponse{code: rr.Code, rr: rr}
}

type testResponse struct {
	code int
	rr   *httptest.ResponseRecorder
}

func logoutRequest(t *testing.T, sessionID string) *http.Request {
	t.Helper()
	req := testutil.NewRequestWithBody(t, http.MethodPost, authhandler.LogoutPath, "")
	req.Header.Set("Authorization", sessionID)
	return req
}

func auditTrail(t *testing.T, gw http.Handler, query string) *admin.AuditListResponse {
	t.Helper()
	req := testutil.NewRequestWithBody(t, http.MethodGet, admin.AuditPath+query, "")
	req.Header.Set("X-Admin-Token", adminToken)
	rr := testutil.DoRequest(gw, req)
	testutil.AssertStatusOK(t, rr)
	return testutil.UnmarshalResponse[admin.AuditListResponse](t, rr)
}

func TestFilingFlow_EndToEnd(t *testing.T) {
	gw := newGateway(t)
	pan, ay := "ABCDE1234F", "2024-25"

	var (
		sessionID string
		draftID   string
		ackNumber string
	)

	testutil.Given(t, "a logged-in ERI user", func(t *testing.T) {
		sessionID = login(t, gw)
	})

	testutil.When(t, "the client is added and prefilled", func(t *testing.T) {
		require.NotEmpty(t, sessionID)

		add := call(t, gw, filinghandler.AddClientPath, sessionID, map[string]string{"pan": pan, "assessmentYear": ay})
		require.Equal(t, http.StatusOK, add.code)
		clientResp := testutil.UnmarshalResponse[models.AddClientResponse](t, add.rr)
		assert.Equal(t, models.StatusSuccess, clientResp.Status)
		assert.Regexp(t, `^CLT_`, clientResp.ClientReferenceID)

		pre := call(t, gw, filinghandler.PrefillPath, sessionID, map[string]string{"pan": pan, "assessmentYear": ay})
		require.Equal(t, http.StatusOK, pre.code)
		prefill := testutil.UnmarshalResponse[filing.Prefill](t, pre.rr)
		assert.Equal(t, int64(1500000), prefill.Salary.TotalGrossSalary)

		again := call(t, gw, filinghandler.PrefillPath, sessionID, map[string]string{"pan": pan, "assessmentYear": ay})
		assert.Equal(t, pre.rr.Body.String(), again.rr.Body.String())
	})

	testutil.When(t, "a valid return is saved as a draft", func(t *testing.T) {
		require.NotEmpty(t, sessionID)

		val := call(t, gw, filinghandler.ValidatePath, sessionID, map[string]any{
			"pan":            pan,
			"assessmentYear": ay,
			"itrType":        "ITR-1",
			"itrData":        map[string]any{"personalInfo": map[string]any{}},
		})
		require.Equal(t, http.StatusOK, val.code)
		validation := testutil.UnmarshalResponse[models.ValidateITRResponse](t, val.rr)
		require.True(t, validation.IsValid)
		require.NotEmpty(t, validation.ValidationID)

		save := call(t, gw, filinghandler.SaveDraftPath, sessionID, map[string]string{"validationId": validation.ValidationID})
		require.Equal(t, http.StatusOK, save.code)
		draft := testutil.UnmarshalResponse[models.SaveDraftResponse](t, save.rr)
		assert.Equal(t, models.StatusSaved, draft.Status)
		draftID = draft.DraftID
	})

	testutil.When(t, "the draft is submitted for later e-verification", func(t *testing.T) {
		require.NotEmpty(t, draftID)

		mode := call(t, gw, filinghandler.SetVerificationModePath, sessionID, map[string]string{
			"draftId":          draftID,
			"verificationMode": "eVerify Later",
		})
		require.Equal(t, http.StatusOK, mode.code)

		sub := call(t, gw, filinghandler.SubmitPath, sessionID, map[string]string{"draftId": draftID})
		require.Equal(t, http.StatusOK, sub.code)
		submitted := testutil.UnmarshalResponse[models.SubmitITRResponse](t, sub.rr)
		assert.Regexp(t, ackPattern, submitted.AcknowledgementNumber)
		assert.Equal(t, strconv.Itoa(time.Now().Year()), submitted.AcknowledgementNumber[:4])
		ackNumber = submitted.AcknowledgementNumber
	})

	testutil.Then(t, "the acknowledgement is available", func(t *testing.T) {
		require.NotEmpty(t, ackNumber)

		ack := call(t, gw, filinghandler.AcknowledgementPath, sessionID, map[string]string{
			"acknowledgementNumber": ackNumber,
		})
		require.Equal(t, http.StatusOK, ack.code)
		ackResp := testutil.UnmarshalResponse[models.AcknowledgementResponse](t, ack.rr)
		assert.True(t, ackResp.ITRVAvailable)
		assert.Equal(t, "https://portal.example/"+ackNumber+"/download", ackResp.PDFURL)
	})

	testutil.Then(t, "health reports the filing", func(t *testing.T) {
		hr := testutil.DoRequest(gw, testutil.NewRequestWithBody(t, http.MethodGet, health.HealthPath, ""))
		testutil.AssertStatusOK(t, hr)
		status := testutil.UnmarshalResponse[health.Response](t, hr)
		assert.Equal(t, 1, status.ActiveSessions)
		assert.Equal(t, 1, status.TotalClients)
		assert.Equal(t, 1, status.TotalSubmissions)
	})

	testutil.Then(t, "the audit trail is keyed by the session reference", func(t *testing.T) {
		trail := auditTrail(t, gw, "?session_ref="+authmodels.SessionRef(sessionID))
		assert.GreaterOrEqual(t, trail.Total, 8)
	})

	testutil.When(t, "the session logs out twice", func(t *testing.T) {
		for range 2 {
			out := testutil.DoRequest(gw, logoutRequest(t, sessionID))
			testutil.AssertStatusOK(t, out)
			testutil.AssertJSONContains(t, out, "status", authmodels.StatusLoggedOut)
		}
	})

	testutil.Then(t, "the session no longer authorizes calls", func(t *testing.T) {
		after := call(t, gw, filinghandler.AddClientPath, sessionID, map[string]string{"pan": pan, "assessmentYear": ay})
		assert.Equal(t, http.StatusUnauthorized, after.code)
	})
}

func TestFilingFlow_SessionTokenStaysOutOfLogsAndAudit(t *testing.T) {
	gw := newGateway(t)
	pan, ay := "ABCDE1234F", "2024-25"
	forged := "forged-session-token-value"

	sessionID := login(t, gw)
	ref := authmodels.SessionRef(sessionID)

	add := call(t, gw, filinghandler.AddClientPath, sessionID, map[string]string{"pan": pan, "assessmentYear": ay})
	require.Equal(t, http.StatusOK, add.code)
	bad := call(t, gw, filinghandler.AddClientPath, sessionID, map[string]string{"pan": "SHORT", "assessmentYear": ay})
	require.Equal(t, http.StatusBadRequest, bad.code)
	rejected := call(t, gw, filinghandler.AddClientPath, forged, map[string]string{"pan": pan, "assessmentYear": ay})
	require.Equal(t, http.StatusUnauthorized, rejected.code)
	testutil.AssertStatusOK(t, testutil.DoRequest(gw, logoutRequest(t, sessionID)))

	logs := gw.logs.String()
	require.NotEmpty(t, logs)
	assert.NotContains(t, logs, sessionID)
	assert.NotContains(t, logs, forged)
	assert.Contains(t, logs, ref)

	events, err := gw.audit.ListAll(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, e := range events {
		for _, field := range []string{e.SessionRef, e.EriUserID, e.Subject, e.Reference, e.RequestID, e.Detail} {
			assert.False(t, strings.Contains(field, sessionID), "audit %s carries the session token", e.Action)
		}
	}
	assert.Equal(t, ref, events[0].SessionRef)

	trail := auditTrail(t, gw, "")
	for _, e := range trail.Events {
		assert.NotEqual(t, sessionID, e.SessionRef)
	}
}

func TestFilingFlow_Preconditions(t *testing.T) {
	gw := newGateway(t)
	sessionID := login(t, gw)
	pan, ay := "ABCDE1234F", "2024-25"

	t.Run("prefill before add-client is not found", func(t *testing.T) {
		res := call(t, gw, filinghandler.PrefillPath, sessionID, map[string]string{"pan": "ZZZZZ9999Z", "assessmentYear": ay})
		assert.Equal(t, http.StatusNotFound, res.code)
	})

	t.Run("validation without personalInfo creates nothing", func(t *testing.T) {
		res := call(t, gw, filinghandler.ValidatePath, sessionID, map[string]any{
			"pan": pan, "assessmentYear": ay, "itrType": "ITR-1",
			"itrData": map[string]any{"salary": 10},
		})
		require.Equal(t, http.StatusOK, res.code)
		body := testutil.UnmarshalResponse[models.ValidateITRResponse](t, res.rr)
		assert.False(t, body.IsValid)
		assert.Empty(t, body.ValidationID)
		require.NotEmpty(t, body.Errors)
		assert.Equal(t, filing.CodePersonalInfoMissing, body.Errors[0].Code)
	})

	t.Run("submit without verification mode fails", func(t *testing.T) {
		val := call(t, gw, filinghandler.ValidatePath, sessionID, map[string]any{
			"pan": pan, "assessmentYear": ay, "itrType": "ITR-1",
			"itrData": map[string]any{"personalInfo": map[string]any{}},
		})
		validation := testutil.UnmarshalResponse[models.ValidateITRResponse](t, val.rr)
		save := call(t, gw, filinghandler.SaveDraftPath, sessionID, map[string]string{"validationId": validation.ValidationID})
		draft := testutil.UnmarshalResponse[models.SaveDraftResponse](t, save.rr)

		sub := call(t, gw, filinghandler.SubmitPath, sessionID, map[string]string{"draftId": draft.DraftID})
		assert.Equal(t, http.StatusBadRequest, sub.code)
		testutil.AssertErrorCode(t, sub.rr, "precondition_failed")
	})

	t.Run("unsigned envelope is rejected before the session check", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, filinghandler.AddClientPath, map[string]string{
			"data":      "e30=",
			"signature": "short",
		})
		rr := testutil.DoRequest(gw, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("bad pan is a validation error", func(t *testing.T) {
		res := call(t, gw, filinghandler.AddClientPath, sessionID, map[string]string{"pan": "SHORT", "assessmentYear": ay})
		assert.Equal(t, http.StatusBadRequest, res.code)
	})
}
