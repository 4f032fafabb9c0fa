package pos

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.DB = gdb
	return mock
}

func posContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	c.Set("jwt_tenant_id", "t1")
	c.Set("user_id", uint(9))
	return c, w
}

func paymentMethodRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "name", "kind", "is_active"}).
		AddRow(1, "t1", "Cash", "cash", true)
}

func productRows(stockQty int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "name", "sku", "price_usd", "cost_usd",
		"stock_qty", "reorder_level", "track_inventory", "is_archived",
	}).AddRow(5, "t1", "Soda", "SKU-1", 10.0, 4.0, stockQty, 0, true, false)
}

func saleBody() map[string]interface{} {
	return map[string]interface{}{
		"payment_method_id": 1,
		"items":             []map[string]interface{}{{"product_id": 5, "quantity": 1}},
	}
}

// The product read takes a row lock and the decrement only applies while
// enough stock remains.
func TestCreateSaleLocksAndDecrements(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "payment_methods" WHERE id = \$1 AND tenant_id = \$2 AND is_active = \$3`).
		WillReturnRows(paymentMethodRows())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 AND tenant_id = \$2 AND is_archived = \$3.*FOR UPDATE`).
		WillReturnRows(productRows(3))
	mock.ExpectQuery(`INSERT INTO "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "sale_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "products" SET "stock_qty"=stock_qty - \$1.*WHERE id = \$3 AND stock_qty >= \$4`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "stock_movements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	c, w := posContext(t, http.MethodPost, "/sales", saleBody())
	CreateSale(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSaleRejectsInsufficientStock(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "payment_methods"`).
		WillReturnRows(paymentMethodRows())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products".*FOR UPDATE`).
		WillReturnRows(productRows(0))
	mock.ExpectRollback()

	c, w := posContext(t, http.MethodPost, "/sales", saleBody())
	CreateSale(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A racing sale can drain the row between check and decrement when the
// lock is not honored; the guarded UPDATE then matches no rows and the
// whole sale rolls back instead of driving stock negative.
func TestCreateSaleRollsBackWhenDecrementLosesRace(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "payment_methods"`).
		WillReturnRows(paymentMethodRows())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products".*FOR UPDATE`).
		WillReturnRows(productRows(1))
	mock.ExpectQuery(`INSERT INTO "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "sale_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "products" SET "stock_qty"=stock_qty - \$1.*stock_qty >= \$4`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, w := posContext(t, http.MethodPost, "/sales", saleBody())
	CreateSale(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
