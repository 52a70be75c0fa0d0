package database

import (
	"testing"

	"clinic-agenda/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{Host: "db", Port: "5432", User: "agenda", Password: "secret", Name: "clinic", SSLMode: "disable"})

	assert.Equal(t, "host=db user=agenda password=secret dbname=clinic port=5432 sslmode=disable TimeZone=UTC", dsn)
}
