package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/dto"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/stock"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/usecase"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/infrastructure/memory"
	apphttp "github.com/Kauan-Sabino/almoxarifado-api/internal/interfaces/http"
	pkgjwt "github.com/Kauan-Sabino/almoxarifado-api/pkg/jwt"
)

var testActorID = uuid.New().String()

// buildAPI construye la aplicación completa sobre el almacén en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(store.ProductRepo()),
		MovementUC: stock.NewMovementUseCase(store, store.MovementRepo()),
		JWTSecret:  testJWTSecret,
	})
	return app, store
}

func bearer(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testActorID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedAPIProduct(store *memory.Store, quantity, minimum int64) string {
	id := uuid.New().String()
	now := time.Now()
	store.SeedProduct(entity.Product{
		ID: id, Name: "producto", Description: "d",
		Quantity: quantity, MinimumStock: minimum,
		CreatedAt: now, UpdatedAt: now,
	})
	return id
}

func TestCreateMovement_EntradaConAlerta(t *testing.T) {
	app, store := buildAPI(t)
	productID := seedAPIProduct(store, 5, 10)

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: productID,
		UserID:    testActorID,
		Quantity:  3,
		Type:      entity.MovementTypeEntry,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[dto.MovementResultResponse](t, resp)
	assert.Equal(t, int64(8), body.Product.Quantity)
	assert.Equal(t, int64(3), body.Data.Quantity)
	require.NotNil(t, body.Alert, "8 < 10: debe venir la alerta")
	assert.Equal(t, int64(10), body.Alert.Minimum)
}

func TestCreateMovement_SalidaInsuficienteRetorna409(t *testing.T) {
	app, store := buildAPI(t)
	productID := seedAPIProduct(store, 5, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: productID,
		UserID:    testActorID,
		Quantity:  10,
		Type:      entity.MovementTypeExit,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 0, store.MovementCount())
}

func TestCreateMovement_BodyInvalidoRetorna400(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", map[string]any{
		"product_id": "no-es-uuid",
		"user_id":    testActorID,
		"quantity":   1,
		"type":       "entry",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestCreateMovement_ProductoInexistenteRetorna404(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: uuid.New().String(),
		UserID:    testActorID,
		Quantity:  1,
		Type:      entity.MovementTypeEntry,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
}

func TestCorrectMovement_AjustaStock(t *testing.T) {
	app, store := buildAPI(t)
	productID := seedAPIProduct(store, 5, 0)

	created := decode[dto.MovementResultResponse](t, doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: productID, UserID: testActorID, Quantity: 10, Type: entity.MovementTypeEntry,
	}))

	qty := int64(4)
	resp := doJSON(t, app, http.MethodPatch, "/api/movements/"+created.Data.ID, dto.CorrectMovementRequest{
		Quantity: &qty,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.MovementResultResponse](t, resp)
	assert.Equal(t, int64(9), body.Product.Quantity, "5 + 10 corregido a 5 + 4")
	assert.Equal(t, int64(4), body.Data.Quantity)
}

func TestReverseMovement_RevierteYElimina(t *testing.T) {
	app, store := buildAPI(t)
	productID := seedAPIProduct(store, 30, 0)

	created := decode[dto.MovementResultResponse](t, doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: productID, UserID: testActorID, Quantity: 20, Type: entity.MovementTypeEntry,
	}))

	resp := doJSON(t, app, http.MethodDelete, "/api/movements/"+created.Data.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.ReverseResultResponse](t, resp)
	assert.Equal(t, int64(30), body.Product.Quantity)

	// El movimiento ya no es recuperable
	resp = doJSON(t, app, http.MethodGet, "/api/movements/"+created.Data.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "MOVEMENT_NOT_FOUND", errBody.Code)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	app, store := buildAPI(t)
	productA := seedAPIProduct(store, 100, 0)
	productB := seedAPIProduct(store, 100, 0)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
			ProductID: productA, UserID: testActorID, Quantity: 1, Type: entity.MovementTypeEntry,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := doJSON(t, app, http.MethodPost, "/api/movements/", dto.CreateMovementRequest{
		ProductID: productB, UserID: testActorID, Quantity: 1, Type: entity.MovementTypeExit,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/movements/?product_id=%s", productA), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, body.Items, 3)

	resp = doJSON(t, app, http.MethodGet, "/api/movements/?from=not-a-date", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMovements_SinTokenRetorna401(t *testing.T) {
	app, _ := buildAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/movements/", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_CRUDCompleto(t *testing.T) {
	app, _ := buildAPI(t)

	created := decode[dto.ProductResponse](t, doJSON(t, app, http.MethodPost, "/api/products/", dto.CreateProductRequest{
		Name: "martillo", Description: "martillo de bola", Quantity: 12, MinimumStock: 2,
	}))
	require.NotEmpty(t, created.ID)

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "martillo", got.Name)

	name := "martillo de uña"
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+created.ID, dto.UpdateProductRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(12), updated.Quantity)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
