package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"church_backend/internal/models"
	"church_backend/internal/services"
	"church_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := utils.InitValidators(); err != nil {
		panic(err)
	}
	enums := map[string][]string{
		"status": {
			string(models.StatusChurchAdmin), string(models.StatusChurchPastor),
			string(models.StatusGroupAdmin), string(models.StatusGroupPastor), string(models.StatusManager),
		},
		"target":            {services.TargetGroup, services.TargetChurch},
		"recipientcategory": services.RecipientCategories(),
	}
	for tag, values := range enums {
		if err := utils.RegisterEnumValidation(tag, values...); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}

// --- mocks ---

type mockReportService struct{ mock.Mock }

func (m *mockReportService) MonthlyReport(ctx context.Context, q services.MonthlyReportQuery) (*models.MonthlyReport, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(*models.MonthlyReport)
	return r, args.Error(1)
}

func (m *mockReportService) GeneralReport(ctx context.Context, q services.GeneralReportQuery) (*models.GeneralReport, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(*models.GeneralReport)
	return r, args.Error(1)
}

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) Stats(ctx context.Context, q services.DashboardQuery) (*models.DashboardStats, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(*models.DashboardStats)
	return r, args.Error(1)
}

type mockMessageService struct{ mock.Mock }

func (m *mockMessageService) SendMessages(ctx context.Context, caller models.AuthUser, req services.SendMessageRequest) (*services.MessageReceipt, error) {
	args := m.Called(ctx, caller, req)
	r, _ := args.Get(0).(*services.MessageReceipt)
	return r, args.Error(1)
}

func (m *mockMessageService) Wait() {}

// --- helpers ---

// withCaller stands in for the auth middleware.
func withCaller(caller *models.AuthUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller == nil {
			return
		}
		c.Set(utils.ContextUserIDKey, caller.ID)
		c.Set(utils.ContextChurchIDKey, caller.ChurchID)
		c.Set(utils.ContextGroupIDKey, caller.GroupID)
		c.Set(utils.ContextStatusKey, caller.Status)
	}
}

func serve(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func reportEngine(rs services.ReportService) *gin.Engine {
	h := NewReportHandler(rs)
	engine := gin.New()
	engine.GET("/reports/monthly", h.GetMonthlyReport)
	engine.GET("/reports/general", h.GetGeneralReport)
	return engine
}

// --- reports ---

func TestGetMonthlyReport_OK(t *testing.T) {
	rs := new(mockReportService)
	church := uuid.New().String()
	name := "Central"
	q := services.MonthlyReportQuery{Month: "2024-03", ChurchID: church}
	rs.On("MonthlyReport", mock.Anything, q).Return(&models.MonthlyReport{ChurchName: &name}, nil)

	w := serve(reportEngine(rs), http.MethodGet, "/reports/monthly?month=2024-03&churchId="+church, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Report successfully generated", body["message"])
	report, ok := body["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Central", report["churchName"])
	rs.AssertExpectations(t)
}

func TestGetMonthlyReport_ScopeValidation(t *testing.T) {
	church, group := uuid.New().String(), uuid.New().String()
	cases := map[string]string{
		"no scope":       "/reports/monthly?month=2024-03",
		"both scopes":    "/reports/monthly?month=2024-03&churchId=" + church + "&groupId=" + group,
		"bad month":      "/reports/monthly?month=March&churchId=" + church,
		"missing month":  "/reports/monthly?churchId=" + church,
		"malformed uuid": "/reports/monthly?month=2024-03&churchId=abc",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rs := new(mockReportService)
			w := serve(reportEngine(rs), http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			rs.AssertNotCalled(t, "MonthlyReport", mock.Anything, mock.Anything)
		})
	}
}

func TestGetGeneralReport_EndBeforeStart(t *testing.T) {
	rs := new(mockReportService)
	group := uuid.New().String()

	w := serve(reportEngine(rs), http.MethodGet, "/reports/general?startMonth=2024-05&endMonth=2024-02&groupId="+group, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	rs.AssertNotCalled(t, "GeneralReport", mock.Anything, mock.Anything)
}

func TestGetGeneralReport_ServiceErrors(t *testing.T) {
	group := uuid.New().String()
	q := services.GeneralReportQuery{StartMonth: "2024-01", EndMonth: "2024-04", GroupID: group}
	target := "/reports/general?startMonth=2024-01&endMonth=2024-04&groupId=" + group

	t.Run("invalid query", func(t *testing.T) {
		rs := new(mockReportService)
		rs.On("GeneralReport", mock.Anything, q).Return(nil, services.ErrInvalidReportQuery)
		w := serve(reportEngine(rs), http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		rs := new(mockReportService)
		rs.On("GeneralReport", mock.Anything, q).Return(nil, errors.New("connection reset"))
		w := serve(reportEngine(rs), http.MethodGet, target, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

// --- dashboard ---

func dashboardEngine(ds services.DashboardService, caller *models.AuthUser) *gin.Engine {
	h := NewDashboardHandler(ds)
	engine := gin.New()
	engine.GET("/dashboard", withCaller(caller), h.GetDashboardStats)
	return engine
}

func TestGetDashboardStats_OK(t *testing.T) {
	ds := new(mockDashboardService)
	caller := &models.AuthUser{ID: uuid.New(), Status: models.StatusManager}
	groups := 3
	ds.On("Stats", mock.Anything, services.DashboardQuery{Status: "manager"}).
		Return(&models.DashboardStats{Stats: models.KPIStats{TotalGroups: &groups}}, nil)

	w := serve(dashboardEngine(ds, caller), http.MethodGet, "/dashboard?status=manager", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
	ds.AssertExpectations(t)
}

func TestGetDashboardStats_StatusAboveCaller(t *testing.T) {
	ds := new(mockDashboardService)
	church := uuid.New()
	caller := &models.AuthUser{ID: uuid.New(), ChurchID: church, Status: models.StatusChurchPastor}

	w := serve(dashboardEngine(ds, caller), http.MethodGet, "/dashboard?status=groupAdmin&target=group&id="+uuid.NewString(), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	ds.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything)
}

func TestGetDashboardStats_Validation(t *testing.T) {
	caller := &models.AuthUser{ID: uuid.New(), Status: models.StatusManager}
	cases := map[string]string{
		"unknown status":        "/dashboard?status=bishop",
		"church without id":     "/dashboard?status=churchAdmin&target=church",
		"unknown target":        "/dashboard?status=churchAdmin&target=region&id=" + uuid.NewString(),
		"manager with a target": "/dashboard?status=manager&target=group&id=" + uuid.NewString(),
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			ds := new(mockDashboardService)
			w := serve(dashboardEngine(ds, caller), http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetDashboardStats_NoCaller(t *testing.T) {
	ds := new(mockDashboardService)
	w := serve(dashboardEngine(ds, nil), http.MethodGet, "/dashboard?status=manager", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- messages ---

func messageEngine(ms services.MessageService, caller *models.AuthUser) *gin.Engine {
	h := NewMessageHandler(ms)
	engine := gin.New()
	engine.POST("/messages", withCaller(caller), h.SendMessages)
	return engine
}

func TestSendMessages(t *testing.T) {
	church := uuid.New()
	caller := &models.AuthUser{ID: uuid.New(), ChurchID: church, Status: models.StatusChurchAdmin}
	body := `{"churchId":"` + church.String() + `","category":"workers","addNames":true,"message":"Prayer at 6pm","targetType":"church"}`

	t.Run("accepted", func(t *testing.T) {
		ms := new(mockMessageService)
		ms.On("SendMessages", mock.Anything, *caller, mock.AnythingOfType("services.SendMessageRequest")).
			Return(&services.MessageReceipt{RecipientCount: 12}, nil)

		w := serve(messageEngine(ms, caller), http.MethodPost, "/messages", body)

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.EqualValues(t, 12, decode(t, w)["recipientCount"])
	})

	t.Run("no recipients", func(t *testing.T) {
		ms := new(mockMessageService)
		ms.On("SendMessages", mock.Anything, *caller, mock.Anything).Return(nil, services.ErrNoRecipients)
		w := serve(messageEngine(ms, caller), http.MethodPost, "/messages", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("out of scope", func(t *testing.T) {
		ms := new(mockMessageService)
		ms.On("SendMessages", mock.Anything, *caller, mock.Anything).Return(nil, services.ErrChurchOutOfScope)
		w := serve(messageEngine(ms, caller), http.MethodPost, "/messages", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		ms := new(mockMessageService)
		bad := strings.Replace(body, "workers", "elders", 1)
		w := serve(messageEngine(ms, caller), http.MethodPost, "/messages", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		ms.AssertNotCalled(t, "SendMessages", mock.Anything, mock.Anything, mock.Anything)
	})
}
