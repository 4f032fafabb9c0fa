package pos

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// Product and opening movement land in one transaction.
func TestCreateProductWritesOpeningMovement(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "stock_movements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	c, w := posContext(t, http.MethodPost, "/products", map[string]interface{}{
		"name":      "Soda",
		"sku":       "SKU-1",
		"price_usd": 10.0,
		"stock_qty": 3,
	})
	CreateProduct(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductWithoutStockSkipsMovement(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()

	c, w := posContext(t, http.MethodPost, "/products", map[string]interface{}{
		"name":      "Service fee",
		"sku":       "SKU-2",
		"price_usd": 2.5,
	})
	CreateProduct(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
