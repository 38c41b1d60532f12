package postgres_test

import (
	"context"
	"testing"

	"hbnb/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSslMode(t *testing.T) {
	_, err := postgres.New(context.Background(), postgres.Options{
		Username: "hbnb",
		Password: "hbnb",
		Host:     "localhost",
		Port:     5432,
		Database: "hbnb",
		SslMode:  "sometimes",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not parse pgxpool config")
}
