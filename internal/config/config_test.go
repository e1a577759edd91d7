package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8050",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Data:      DataConfig{Path: "gdp_pcap.csv"},
		Dashboard: DashboardConfig{MarkStep: 20, ChartWidth: 800, ChartHeight: 400},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty data path", mutate: func(c *Config) { c.Data.Path = "" }, wantErr: true},
		{name: "empty address", mutate: func(c *Config) { c.Server.Address = "" }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, wantErr: true},
		{name: "zero mark step", mutate: func(c *Config) { c.Dashboard.MarkStep = 0 }, wantErr: true},
		{name: "negative chart width", mutate: func(c *Config) { c.Dashboard.ChartWidth = -1 }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
