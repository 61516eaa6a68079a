package routecatalog_test

import (
	"context"
	"testing"
	"time"

	"reparto/internal/adapters/out/postgres/routecatalog"
	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RouteCatalogIntegrationTestSuite verifies route lookups against a real
// PostgreSQL instance.
type RouteCatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *routecatalog.GormRouteCatalog
}

func (suite *RouteCatalogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&routecatalog.RouteDTO{})
	suite.Require().NoError(err)

	suite.catalog = routecatalog.NewGormRouteCatalog(db)
}

func (suite *RouteCatalogIntegrationTestSuite) SetupTest() {
	suite.db.Exec("TRUNCATE TABLE routes")
}

func (suite *RouteCatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		_ = suite.container.Terminate(context.Background())
	}
}

func (suite *RouteCatalogIntegrationTestSuite) insertRoute(name string, localities []string) uuid.UUID {
	dto := routecatalog.RouteDTO{
		ID:               uuid.New(),
		Name:             name,
		Localities:       pq.StringArray(localities),
		DefaultDriverID:  uuid.New(),
		DefaultVehicleID: uuid.New(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *RouteCatalogIntegrationTestSuite) TestRoute() {
	ctx := context.Background()
	routeID := suite.insertRoute("north corridor", []string{"Pilar", "Escobar"})
	suite.insertRoute("south corridor", []string{"Quilmes"})

	id, err := kernel.UUIDFromBytes(routeID[:])
	suite.Require().NoError(err)

	route, err := suite.catalog.Route(ctx, id)
	suite.Require().NoError(err)

	suite.Equal("north corridor", route.Name)
	suite.Equal([]string{"Pilar", "Escobar"}, route.Localities)
	suite.True(route.ID.IsEqual(id))
	suite.False(route.DefaultDriverID.IsEqual(kernel.UUID{}))
	suite.False(route.DefaultVehicleID.IsEqual(kernel.UUID{}))
}

func (suite *RouteCatalogIntegrationTestSuite) TestRouteNotFound() {
	ctx := context.Background()

	_, err := suite.catalog.Route(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestRouteCatalogIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RouteCatalogIntegrationTestSuite))
}
