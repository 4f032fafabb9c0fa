package provisioning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return mock, gdb
}

func TestStopWithoutStart(t *testing.T) {
	wp := &WorkerPool{stopCh: make(chan struct{})}
	wp.Stop()

	select {
	case <-wp.stopCh:
	default:
		t.Fatal("stop channel not closed")
	}
}

func TestHandleRejectsMalformedPayload(t *testing.T) {
	wp := &WorkerPool{}

	err := wp.handle(amqp.Delivery{Body: []byte("{not json")})
	assert.ErrorContains(t, err, "malformed job payload")
}

func TestHandleRejectsMissingTenantID(t *testing.T) {
	wp := &WorkerPool{}

	body, _ := json.Marshal(Job{AdminID: 7, CreatedAt: time.Now()})
	err := wp.handle(amqp.Delivery{Body: body})
	assert.ErrorContains(t, err, "missing tenant_id")
}

func TestHandleSkipsProvisionedTenant(t *testing.T) {
	mock, gdb := setupMockDB(t)
	wp := &WorkerPool{db: gdb}

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WithArgs("t1", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "subdomain", "status", "provisioned_at"}).
			AddRow("t1", "Duka", "duka", "trial", now))

	body, _ := json.Marshal(Job{TenantID: "t1", AdminID: 1, CreatedAt: now})
	err := wp.handle(amqp.Delivery{Body: body})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleFailsForUnknownTenant(t *testing.T) {
	mock, gdb := setupMockDB(t)
	wp := &WorkerPool{db: gdb}

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body, _ := json.Marshal(Job{TenantID: "ghost"})
	err := wp.handle(amqp.Delivery{Body: body})
	assert.ErrorContains(t, err, "not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}
