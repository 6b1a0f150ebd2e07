package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
		check         func(*testing.T, *Config)
	}{
		{
			name: "defaults with mongo",
			env:  map[string]string{"JWT_SECRET": "s", "MONGODB_URI": "mongodb://localhost"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "4000", c.Port)
				assert.Equal(t, DriverMongo, c.StoreDriver)
				assert.Equal(t, "INR", c.Currency)
				assert.Equal(t, "e-commerce", c.MongoDatabase)
				assert.Nil(t, c.CORSOrigins)
				assert.Equal(t, int64(1000), c.DeliveryFee)
			},
		},
		{
			name: "mysql driver and lists",
			env: map[string]string{
				"JWT_SECRET":     "s",
				"STORE_DRIVER":   "MySQL",
				"MYSQL_DATABASE": "shop",
				"CURRENCY":       "usd",
				"BASE_URL":       "https://shop.example/",
				"CORS_ORIGINS":   "https://a.example, ,https://b.example",
				"DELIVERY_FEE":   "4.99",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DriverMySQL, c.StoreDriver)
				assert.Equal(t, "shop", c.MySQL.Database)
				assert.Equal(t, "USD", c.Currency)
				assert.Equal(t, "https://shop.example", c.BaseURL)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
				assert.Equal(t, int64(499), c.DeliveryFee)
			},
		},
		{
			name:          "zero-decimal currency",
			env:           map[string]string{"JWT_SECRET": "s", "MONGODB_URI": "mongodb://localhost", "CURRENCY": "jpy"},
			expectedError: "unsupported CURRENCY \"JPY\"",
		},
		{
			name:          "negative delivery fee",
			env:           map[string]string{"JWT_SECRET": "s", "MONGODB_URI": "mongodb://localhost", "DELIVERY_FEE": "-1"},
			expectedError: "invalid DELIVERY_FEE",
		},
		{
			name:          "missing jwt secret",
			env:           map[string]string{"MONGODB_URI": "mongodb://localhost"},
			expectedError: "JWT_SECRET is required",
		},
		{
			name:          "missing mongo uri",
			env:           map[string]string{"JWT_SECRET": "s"},
			expectedError: "MONGODB_URI is required",
		},
		{
			name:          "missing mysql database",
			env:           map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "mysql"},
			expectedError: "MYSQL_DATABASE is required",
		},
		{
			name:          "unknown driver",
			env:           map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
			expectedError: "unknown STORE_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(envOf(tt.env))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
