package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type routerFixture struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(models.SQLiteDSN(dsn)), models.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := models.InitDefaultAdmin("admin@test.local", "admin-pass"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "debug"},
		JWT:      config.JWTConfig{SecretKey: "admin-test-secret", ExpireHours: 1},
		StoreJWT: config.JWTConfig{SecretKey: "store-test-secret", ExpireHours: 24},
		Binding:  config.BindingConfig{DefaultExpiresInHours: 24},
		Ledger:   config.LedgerConfig{MaxBatchQuantity: 500, DefaultThresholdDays: 1},
		Printer:  config.PrinterConfig{Sink: constants.PrinterSinkLog},
	}
	container := provider.NewContainer(cfg)
	return &routerFixture{engine: SetupRouter(cfg, container), db: db}
}

func (f *routerFixture) call(t *testing.T, method, path, token string, body interface{}) apiEnvelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s unmarshal failed: %v body=%s", method, path, err, w.Body.String())
	}
	return resp
}

func (f *routerFixture) mustOK(t *testing.T, method, path, token string, body interface{}, dest interface{}) {
	t.Helper()
	resp := f.call(t, method, path, token, body)
	if resp.StatusCode != 0 {
		t.Fatalf("%s %s want status_code 0 got %d msg=%s", method, path, resp.StatusCode, resp.Msg)
	}
	if dest != nil {
		if err := json.Unmarshal(resp.Data, dest); err != nil {
			t.Fatalf("%s %s decode data failed: %v", method, path, err)
		}
	}
}

func (f *routerFixture) expectCode(t *testing.T, method, path, token string, body interface{}, want int) {
	t.Helper()
	resp := f.call(t, method, path, token, body)
	if resp.StatusCode != want {
		t.Fatalf("%s %s want status_code %d got %d msg=%s", method, path, want, resp.StatusCode, resp.Msg)
	}
}

func (f *routerFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	var login struct {
		Token string `json:"token"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/admin/login", "", gin.H{"email": email, "password": password}, &login)
	if login.Token == "" {
		t.Fatalf("login token should not be empty")
	}
	return login.Token
}

func TestHealth(t *testing.T) {
	f := setupRouterFixture(t)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", w.Code, w.Body.String())
	}
}

func TestTerminalLifecycle(t *testing.T) {
	f := setupRouterFixture(t)
	f.expectCode(t, http.MethodPost, "/api/v1/admin/login", "", gin.H{"email": "admin@test.local", "password": "wrong"}, 401)
	adminToken := f.login(t, "ADMIN@test.local", "admin-pass")

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/admin/me", adminToken, nil, &me)
	if me.Email != "admin@test.local" || me.Role != constants.RoleAdmin {
		t.Fatalf("unexpected admin me: %+v", me)
	}

	var brand struct {
		ID uint `json:"id"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/admin/brands", adminToken, gin.H{"name": "Acme Fresh"}, &brand)
	f.expectCode(t, http.MethodPost, "/api/v1/admin/brands", adminToken, gin.H{"name": "Acme Fresh"}, 409)

	var store struct {
		ID           uint `json:"id"`
		LabelWidthMM *int `json:"label_width_mm"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/admin/stores", adminToken, gin.H{"brand_id": brand.ID, "name": "Central"}, &store)
	if store.LabelWidthMM == nil || *store.LabelWidthMM != 58 {
		t.Fatalf("store label width should default to 58: %+v", store)
	}
	f.expectCode(t, http.MethodPost, "/api/v1/admin/stores", adminToken, gin.H{"brand_id": 999, "name": "Ghost"}, 404)

	printerPath := fmt.Sprintf("/api/v1/admin/stores/%d/printer-settings", store.ID)
	f.mustOK(t, http.MethodPatch, printerPath, adminToken, gin.H{"printer_address": "10.0.0.8", "printer_port": 9100}, nil)
	f.expectCode(t, http.MethodPatch, printerPath, adminToken, gin.H{"printer_port": 70000}, 400)
	f.expectCode(t, http.MethodPatch, printerPath, adminToken, gin.H{"printer_dpi": 203.5}, 400)

	var product struct {
		ID uint `json:"id"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/admin/products", adminToken, gin.H{
		"brand_id":        brand.ID,
		"name":            "Fresh Milk",
		"sku":             "MILK-1L",
		"shelf_life_days": 3,
	}, &product)

	var code struct {
		Code string `json:"code"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/admin/binding-codes", adminToken, gin.H{"store_id": store.ID}, &code)

	f.expectCode(t, http.MethodGet, "/api/v1/store/me", "", nil, 401)
	var bind struct {
		Token string `json:"token"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/store/bind", "", gin.H{"code": strings.ToLower(code.Code), "device_id": "tablet-1"}, &bind)
	f.expectCode(t, http.MethodPost, "/api/v1/store/bind", "", gin.H{"code": code.Code, "device_id": "tablet-2"}, 409)
	f.expectCode(t, http.MethodPost, "/api/v1/store/bind", "", gin.H{"code": "NOPE-0000"}, 400)
	f.expectCode(t, http.MethodGet, "/api/v1/store/me", adminToken, nil, 401)

	var terminal struct {
		StoreID  uint   `json:"store_id"`
		DeviceID string `json:"device_id"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/store/me", bind.Token, nil, &terminal)
	if terminal.StoreID != store.ID || terminal.DeviceID != "tablet-1" {
		t.Fatalf("unexpected terminal identity: %+v", terminal)
	}

	var products []struct {
		ID uint `json:"id"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/store/products", bind.Token, nil, &products)
	if len(products) != 1 || products[0].ID != product.ID {
		t.Fatalf("unexpected store products: %+v", products)
	}

	f.expectCode(t, http.MethodPost, "/api/v1/store/print", bind.Token, gin.H{"product_id": product.ID, "quantity": 2.5}, 400)
	f.expectCode(t, http.MethodPost, "/api/v1/store/print", bind.Token, gin.H{"product_id": product.ID, "quantity": 501}, 400)
	f.expectCode(t, http.MethodPost, "/api/v1/store/print", bind.Token, gin.H{"product_id": product.ID, "quantity": 0}, 400)

	var printed struct {
		Batch struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"batch"`
		RemindersCreated int `json:"reminders_created"`
		Label            struct {
			Text string `json:"text"`
		} `json:"label"`
		PrinterSettings struct {
			Address *string `json:"printer_address"`
		} `json:"printer_settings"`
		PrintJob struct {
			Queued    bool `json:"queued"`
			Delivered bool `json:"delivered"`
		} `json:"print_job"`
	}
	f.mustOK(t, http.MethodPost, "/api/v1/store/print", bind.Token, gin.H{"product_id": product.ID, "quantity": 3}, &printed)
	if printed.RemindersCreated != 3 || printed.Batch.Quantity != 3 {
		t.Fatalf("unexpected print result: %+v", printed)
	}
	if !strings.Contains(printed.Label.Text, "Product: Fresh Milk") || !strings.Contains(printed.Label.Text, "SKU: MILK-1L") {
		t.Fatalf("unexpected label text: %s", printed.Label.Text)
	}
	if printed.PrinterSettings.Address == nil || *printed.PrinterSettings.Address != "10.0.0.8" {
		t.Fatalf("printer settings should carry store address: %+v", printed.PrinterSettings)
	}
	if printed.PrintJob.Queued || !printed.PrintJob.Delivered {
		t.Fatalf("log sink should deliver synchronously: %+v", printed.PrintJob)
	}

	var reminders []struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/store/reminders?status=all", bind.Token, nil, &reminders)
	if len(reminders) != 3 {
		t.Fatalf("reminders want 3 got %d", len(reminders))
	}
	f.mustOK(t, http.MethodGet, "/api/v1/store/reminders?threshold_days=5", bind.Token, nil, &reminders)
	if len(reminders) != 3 {
		t.Fatalf("expiring within 5 days want 3 got %d", len(reminders))
	}
	f.expectCode(t, http.MethodGet, "/api/v1/store/reminders?status=stale", bind.Token, nil, 400)
	f.expectCode(t, http.MethodGet, "/api/v1/store/reminders?threshold_days=1.5", bind.Token, nil, 400)

	handlePath := fmt.Sprintf("/api/v1/store/reminders/%d/handle", reminders[0].ID)
	f.expectCode(t, http.MethodPost, handlePath, bind.Token, gin.H{"reason": "lost"}, 400)
	f.mustOK(t, http.MethodPost, handlePath, bind.Token, gin.H{"reason": "sold", "note": "end of day"}, nil)
	f.expectCode(t, http.MethodPost, handlePath, bind.Token, gin.H{"reason": "sold"}, 409)
	f.expectCode(t, http.MethodPost, "/api/v1/store/reminders/99999/handle", bind.Token, gin.H{"reason": "sold"}, 404)

	var logs []struct {
		Reason string `json:"reason"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/admin/handling-logs?reason=sold", adminToken, nil, &logs)
	if len(logs) != 1 || logs[0].Reason != constants.HandlingReasonSold {
		t.Fatalf("unexpected handling logs: %+v", logs)
	}

	var report struct {
		Rows []interface{} `json:"rows"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/admin/reports/expired-handling?force_refresh=true", adminToken, nil, &report)
	if len(report.Rows) != 0 {
		t.Fatalf("nothing has expired yet, got %d rows", len(report.Rows))
	}
	f.expectCode(t, http.MethodGet, "/api/v1/admin/reports/expired-handling?force_refresh=maybe", adminToken, nil, 400)
}

func TestOperatorRBAC(t *testing.T) {
	f := setupRouterFixture(t)
	for _, item := range []struct {
		email string
		role  string
	}{
		{email: "ops@test.local", role: constants.RoleOperator},
		{email: "audit@test.local", role: constants.RoleAuditor},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("role-pass"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password failed: %v", err)
		}
		user := models.User{Email: item.email, PasswordHash: string(hash), Role: item.role}
		if err := f.db.Create(&user).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	operatorToken := f.login(t, "ops@test.local", "role-pass")
	auditorToken := f.login(t, "audit@test.local", "role-pass")

	f.mustOK(t, http.MethodPost, "/api/v1/admin/brands", operatorToken, gin.H{"name": "Operator Brand"}, nil)
	f.expectCode(t, http.MethodPost, "/api/v1/admin/authz/roles/auditor/policies", operatorToken, gin.H{"object": "/admin/brands", "action": "POST"}, 403)
	f.expectCode(t, http.MethodPost, "/api/v1/admin/brands", auditorToken, gin.H{"name": "Auditor Brand"}, 403)
	f.mustOK(t, http.MethodGet, "/api/v1/admin/brands", auditorToken, nil, nil)
	f.mustOK(t, http.MethodGet, "/api/v1/admin/users", auditorToken, nil, nil)

	adminToken := f.login(t, "admin@test.local", "admin-pass")
	f.expectCode(t, http.MethodPost, "/api/v1/admin/authz/roles/auditor/policies", adminToken, gin.H{"object": "/admin/brands", "action": "POST"}, 400)

	var catalog []struct {
		Permission string `json:"permission"`
	}
	f.mustOK(t, http.MethodGet, "/api/v1/admin/authz/permissions", adminToken, nil, &catalog)
	found := false
	for _, item := range catalog {
		if item.Permission == "PATCH:/admin/stores/:id/printer-settings" {
			found = true
		}
		if item.Permission == "POST:/admin/login" {
			t.Fatalf("login should not appear in permission catalog")
		}
	}
	if !found {
		t.Fatalf("permission catalog missing printer settings route: %+v", catalog)
	}
}
