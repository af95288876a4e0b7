package configrepo_test

import (
	"context"
	"testing"

	postgres_adapter "mfgorders/internal/adapters/out/postgres"
	"mfgorders/internal/adapters/out/postgres/configrepo"
	"mfgorders/internal/adapters/out/postgres/pgtest"
	"mfgorders/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MarginConfigRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *configrepo.GormMarginConfigRepository
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = configrepo.NewGormMarginConfigRepository(db)
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) TestLoad_EmptyReturnsDefaults() {
	cfg, found, err := suite.repository.Load(context.Background())

	suite.Require().NoError(err)
	suite.False(found)
	suite.True(cfg.ProductMarginPct.Equal(decimal.NewFromInt(80)))
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) TestLoad_PartialKeepsDefaultForMissingKey() {
	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO system_config (name, value) VALUES (?, ?)", configrepo.ShippingMarginKey, "12.5").Error)

	cfg, found, err := suite.repository.Load(context.Background())

	suite.Require().NoError(err)
	suite.True(found)
	suite.True(cfg.ProductMarginPct.Equal(decimal.NewFromInt(80)))
	suite.True(cfg.ShippingMarginPct.Equal(decimal.RequireFromString("12.5")))
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) TestSave_Upserts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Save(ctx, services.MarginConfig{
		ProductMarginPct: decimal.NewFromInt(50), ShippingMarginPct: decimal.NewFromInt(5),
	}))
	suite.Require().NoError(suite.repository.Save(ctx, services.MarginConfig{
		ProductMarginPct: decimal.NewFromInt(65), ShippingMarginPct: decimal.Zero,
	}))

	cfg, found, err := suite.repository.Load(ctx)

	suite.Require().NoError(err)
	suite.True(found)
	suite.True(cfg.ProductMarginPct.Equal(decimal.NewFromInt(65)))
	suite.True(cfg.ShippingMarginPct.IsZero())
}

func (suite *MarginConfigRepositoryIntegrationTestSuite) TestLoad_MalformedValue() {
	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO system_config (name, value) VALUES (?, ?)", configrepo.ProductMarginKey, "eighty").Error)

	_, _, err := suite.repository.Load(context.Background())

	suite.Require().Error(err)
	suite.Contains(err.Error(), configrepo.ProductMarginKey)
}

func TestMarginConfigRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MarginConfigRepositoryIntegrationTestSuite))
}
