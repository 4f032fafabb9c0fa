package tenants

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *GormStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock, &GormStore{DB: gdb}
}

func tenantRows(id, subdomain string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "subdomain", "status", "created_at", "updated_at"}).
		AddRow(id, "Mama Njeri's Shop", subdomain, StatusTrial, now, now)
}

func TestGormStoreBySubdomain(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE subdomain = \$1`).
		WithArgs("duka", 1).
		WillReturnRows(tenantRows("t1", "duka"))

	tenant, err := store.BySubdomain(context.Background(), "duka")
	require.NoError(t, err)
	assert.Equal(t, "t1", tenant.ID)
	assert.Equal(t, "duka", tenant.Subdomain)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreBySubdomainNotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE subdomain = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tenant, err := store.BySubdomain(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoTenant)
	assert.Nil(t, tenant)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreByCustomDomain(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE custom_domain = \$1`).
		WithArgs("shop.example.com", 1).
		WillReturnRows(tenantRows("t2", "duka"))

	tenant, err := store.ByCustomDomain(context.Background(), "shop.example.com")
	require.NoError(t, err)
	assert.Equal(t, "t2", tenant.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
