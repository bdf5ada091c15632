package initializers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Phirakan/go-storefront/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "shop",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "require",
	})
	assert.Equal(t, "host=db user=shop password=secret dbname=storefront port=5433 sslmode=require", dsn)
}
