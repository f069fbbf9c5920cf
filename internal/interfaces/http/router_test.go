package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/docs"
	"github.com/jhoicas/Taller-api/internal/application/cashregister"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/repairs"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/ticket"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
)

const (
	cashierID    = "cajero-1"
	supervisorID = "super-1"
	techID       = "tec-1"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.DB) {
	t.Helper()
	db := memory.New()
	db.SeedProduct(entity.Product{
		ID: "p-mouse", SKU: "MOU-001", Name: "Wireless Mouse",
		Price: decimal.RequireFromString("24.99"), TaxRate: decimal.NewFromInt(16),
		Stock: 5, MinStock: 10,
	})
	db.SeedProduct(entity.Product{
		ID: "p-screen", SKU: "SCR-001", Name: "Pantalla",
		Price: decimal.RequireFromString("80"), TaxRate: decimal.Zero,
		Stock: 3, MinStock: 1,
	})

	m := metrics.New()
	tickets := ticket.New()
	ledger := inventory.NewLedger(db, db, m, nil)
	app := apphttp.NewApp(apphttp.RouterDeps{
		Ledger:    ledger,
		LowStock:  inventory.NewLowStockUseCase(db.Products()),
		Sales:     sales.NewSalesUseCase(db, db, ledger, tickets, "TICKET", m, nil),
		Receipt:   sales.NewReceiptUseCase(db, pdf.NewReceiptGenerator("Taller Test")),
		Repairs:   repairs.NewRepairUseCase(db, db, ledger, tickets, repairs.Options{TicketPrefix: "REP"}, m, nil),
		Cash:      cashregister.NewCashRegisterUseCase(db, db, m, nil),
		Metrics:   m,
		APIDocs:   []byte(docs.SwaggerInfo.ReadDoc()),
		JWTSecret: testJWTSecret,
		AppName:   "taller-test",
	})
	return app, db
}

// call envía la petición autenticada con el rol dado (sin token si role == "")
// y decodifica el cuerpo JSON si lo hay.
func call(t *testing.T, app *fiber.App, method, path, userID, role string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", bearer(t, userID, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func stockOf(t *testing.T, app *fiber.App, productID string) float64 {
	t.Helper()
	status, body := call(t, app, http.MethodGet, "/api/inventory/kardex/"+productID, supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status, body)
	return body["current_stock"].(float64)
}

func saleBody(productID string, qty int) map[string]any {
	return map[string]any{
		"payment_method": "CASH",
		"items":          []map[string]any{{"product_id": productID, "quantity": qty}},
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_SinToken_401(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, http.MethodGet, "/api/sales", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestSales_CrearYAnular(t *testing.T) {
	app, _ := newTestApp(t)

	status, sale := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("p-mouse", 2))
	require.Equal(t, http.StatusCreated, status, sale)
	assert.Equal(t, "COMPLETED", sale["status"])
	assert.Equal(t, cashierID, sale["operator_id"])
	assert.True(t, strings.HasPrefix(sale["ticket_number"].(string), "TICKET-"))
	assert.Equal(t, float64(3), stockOf(t, app, "p-mouse"))

	id := sale["id"].(string)
	status, _ = call(t, app, http.MethodGet, "/api/sales/"+id, cashierID, pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusOK, status)

	// Un cajero no puede anular.
	status, body := call(t, app, http.MethodPut, "/api/sales/"+id+"/cancel", cashierID, pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, canceled := call(t, app, http.MethodPut, "/api/sales/"+id+"/cancel", supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status, canceled)
	assert.Equal(t, "CANCELED", canceled["status"])
	assert.Equal(t, float64(5), stockOf(t, app, "p-mouse"))

	status, body = call(t, app, http.MethodPut, "/api/sales/"+id+"/cancel", supervisorID, pkgjwt.RoleSupervisor, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CANCELED", body["code"])
	assert.Equal(t, float64(5), stockOf(t, app, "p-mouse"))
}

func TestSales_StockInsuficiente_409(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("p-mouse", 6))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "p-mouse", details["product_id"])
	assert.Equal(t, float64(6), details["requested"])
	assert.Equal(t, float64(5), details["available"])
	assert.Equal(t, float64(5), stockOf(t, app, "p-mouse"))
}

func TestSales_ErroresDeEntrada(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, `{"items":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier,
		map[string]any{"payment_method": "CASH", "items": []any{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("no-existe", 1))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/sales/no-existe", cashierID, pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/api/sales?from=ayer", cashierID, pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestSales_ListarPorOperador(t *testing.T) {
	app, _ := newTestApp(t)
	for i := 0; i < 2; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("p-mouse", 1))
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := call(t, app, http.MethodPost, "/api/sales", "otro", pkgjwt.RoleCashier, saleBody("p-mouse", 1))
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodGet, "/api/sales?operator_id="+cashierID+"&from=2000-01-01", supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])
}

func TestSales_Comprobante(t *testing.T) {
	app, _ := newTestApp(t)
	status, sale := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("p-screen", 1))
	require.Equal(t, http.StatusCreated, status)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+sale["id"].(string)+"/receipt", nil)
	req.Header.Set("Authorization", bearer(t, cashierID, pkgjwt.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), sale["ticket_number"].(string))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestInventory_MovimientosYBajoStock(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/api/inventory/movements", cashierID, pkgjwt.RoleCashier,
		map[string]any{"product_id": "p-mouse", "type": "IN", "quantity": 10})
	assert.Equal(t, http.StatusForbidden, status, body)

	status, mov := call(t, app, http.MethodPost, "/api/inventory/movements", supervisorID, pkgjwt.RoleSupervisor,
		map[string]any{"product_id": "p-screen", "type": "ADJUSTMENT", "quantity": 7, "reason": "conteo físico"})
	require.Equal(t, http.StatusCreated, status, mov)
	assert.Equal(t, float64(3), mov["quantity_before"])
	assert.Equal(t, float64(7), mov["quantity_after"])

	status, body = call(t, app, http.MethodPost, "/api/inventory/movements", supervisorID, pkgjwt.RoleSupervisor,
		map[string]any{"product_id": "p-screen", "type": "OUT", "quantity": 8})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/movements?product_id=p-screen", supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/low-stock", supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "p-mouse", items[0].(map[string]any)["product_id"])
}

func TestRepairs_FlujoYAnulacion(t *testing.T) {
	app, _ := newTestApp(t)

	status, rep := call(t, app, http.MethodPost, "/api/repairs", cashierID, pkgjwt.RoleCashier, map[string]any{
		"client_id":      "c-1",
		"device_id":      "d-1",
		"reported_issue": "no enciende",
		"estimated_cost": "50",
	})
	require.Equal(t, http.StatusCreated, status, rep)
	assert.Equal(t, "RECEIVED", rep["status"])
	id := rep["id"].(string)

	status, body := call(t, app, http.MethodPost, "/api/repairs/"+id+"/items", techID, pkgjwt.RoleTechnician,
		map[string]any{"product_id": "p-screen", "quantity": 2, "cost": "80"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, float64(1), stockOf(t, app, "p-screen"))

	status, body = call(t, app, http.MethodPut, "/api/repairs/"+id+"/status", techID, pkgjwt.RoleTechnician,
		map[string]any{"status": "IN_REPAIR", "notes": "cambio de pantalla"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "IN_REPAIR", body["status"])

	status, body = call(t, app, http.MethodPost, "/api/repairs/"+id+"/notes", techID, pkgjwt.RoleTechnician,
		map[string]any{"content": "cliente avisado", "is_internal": false})
	require.Equal(t, http.StatusCreated, status, body)

	// Un técnico no puede anular.
	status, _ = call(t, app, http.MethodDelete, "/api/repairs/"+id, techID, pkgjwt.RoleTechnician, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, app, http.MethodDelete, "/api/repairs/"+id, supervisorID, pkgjwt.RoleSupervisor,
		map[string]any{"reason": "cliente desistió"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "CANCELED", body["status"])
	assert.Equal(t, float64(3), stockOf(t, app, "p-screen"))

	status, body = call(t, app, http.MethodGet, "/api/repairs/history?device_id=d-1", techID, pkgjwt.RoleTechnician, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, body = call(t, app, http.MethodGet, "/api/repairs/history", techID, pkgjwt.RoleTechnician, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestCashRegister_AbrirMoverCerrar(t *testing.T) {
	app, _ := newTestApp(t)

	status, session := call(t, app, http.MethodPost, "/api/cash-register/open", cashierID, pkgjwt.RoleCashier,
		map[string]any{"start_amount": "100"})
	require.Equal(t, http.StatusCreated, status, session)
	id := session["id"].(string)

	status, body := call(t, app, http.MethodPost, "/api/cash-register/open", cashierID, pkgjwt.RoleCashier,
		map[string]any{"start_amount": "50"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_OPEN", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/cash-register/movements", cashierID, pkgjwt.RoleCashier,
		map[string]any{"session_id": id, "type": "OUT", "amount": "20", "reason": "cambio"})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = call(t, app, http.MethodGet, "/api/cash-register/current", cashierID, pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["movements"], 1)

	status, body = call(t, app, http.MethodPut, "/api/cash-register/"+id+"/close", cashierID, pkgjwt.RoleCashier,
		map[string]any{"end_amount": "80"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "CLOSED", body["status"])

	status, body = call(t, app, http.MethodPut, "/api/cash-register/"+id+"/close", cashierID, pkgjwt.RoleCashier,
		map[string]any{"end_amount": "80"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CLOSED", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/cash-register/current", cashierID, pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Otro cajero no ve historial ajeno aunque lo pida.
	status, body = call(t, app, http.MethodGet, "/api/cash-register/history?operator_id="+cashierID, "otro", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	status, body = call(t, app, http.MethodGet, "/api/cash-register/history?operator_id="+cashierID, supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := call(t, app, http.MethodPost, "/api/sales", cashierID, pkgjwt.RoleCashier, saleBody("p-mouse", 1))
	require.Equal(t, http.StatusCreated, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "taller_sales_total 1")
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestRepairs_EditarOrdenAbierta(t *testing.T) {
	app, _ := newTestApp(t)

	status, rep := call(t, app, http.MethodPost, "/api/repairs", cashierID, pkgjwt.RoleCashier, map[string]any{
		"client_id":      "c-1",
		"device_id":      "d-1",
		"reported_issue": "pantalla rota",
	})
	require.Equal(t, http.StatusCreated, status, rep)
	id := rep["id"].(string)

	edit := map[string]any{
		"technician_id":    techID,
		"diagnostic_final": "flex de pantalla dañado",
		"estimated_cost":   "120.50",
		"warranty":         "90 días",
	}
	status, _ = call(t, app, http.MethodPut, "/api/repairs/"+id, techID, pkgjwt.RoleTechnician, edit)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodPut, "/api/repairs/"+id, supervisorID, pkgjwt.RoleSupervisor, edit)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, techID, body["technician_id"])
	assert.Equal(t, "flex de pantalla dañado", body["diagnostic_final"])
	assert.Equal(t, "120.5", body["estimated_cost"])
	assert.Equal(t, "RECEIVED", body["status"])

	status, body = call(t, app, http.MethodPut, "/api/repairs/"+id, supervisorID, pkgjwt.RoleSupervisor, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status, body)

	status, _ = call(t, app, http.MethodDelete, "/api/repairs/"+id, supervisorID, pkgjwt.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = call(t, app, http.MethodPut, "/api/repairs/"+id, supervisorID, pkgjwt.RoleSupervisor, edit)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
}

func TestRepairs_CambioDeEstadoNoEntregaNiAnula(t *testing.T) {
	app, _ := newTestApp(t)

	status, rep := call(t, app, http.MethodPost, "/api/repairs", cashierID, pkgjwt.RoleCashier, map[string]any{
		"client_id":      "c-1",
		"device_id":      "d-1",
		"reported_issue": "no carga",
	})
	require.Equal(t, http.StatusCreated, status, rep)
	id := rep["id"].(string)

	for _, target := range []string{"DELIVERED", "CANCELED"} {
		status, body := call(t, app, http.MethodPut, "/api/repairs/"+id+"/status", supervisorID, pkgjwt.RoleSupervisor,
			map[string]any{"status": target})
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.Equal(t, "VALIDATION", body["code"])
	}
}

func TestSwaggerDocs(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/docs/swagger.json", "", "", nil)
	require.Equal(t, http.StatusOK, status)
	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/sales")
	assert.Contains(t, paths, "/api/repairs/{id}")
}
