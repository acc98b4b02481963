package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultReloadInterval = 60 * time.Second

type MembershipConfig struct {
	HTTPPort       int
	GRPCPort       int
	ConfigPath     string
	NodeID         string
	NodeHost       string
	NodePort       int
	ReloadInterval time.Duration
	LogLevel       string
}

// LoadConfig loads process configuration from environment variables.
// SERVICE_PORT_HTTP, SERVICE_PORT_GRPC, NODE_HOST and NODE_PORT are required. The discovery settings
// (store, intervals) live in the file at CONFIG_PATH and in MEMBERSHIP_* variables, see adapters/confloader.
func LoadConfig() (*MembershipConfig, error) {
	httpPort, err := requiredPort("SERVICE_PORT_HTTP")
	if err != nil {
		return nil, err
	}
	grpcPort, err := requiredPort("SERVICE_PORT_GRPC")
	if err != nil {
		return nil, err
	}

	nodeHost := strings.TrimSpace(os.Getenv("NODE_HOST"))
	if nodeHost == "" {
		return nil, fmt.Errorf("NODE_HOST is required")
	}
	nodePort, err := requiredPort("NODE_PORT")
	if err != nil {
		return nil, err
	}

	nodeID := strings.TrimSpace(os.Getenv("NODE_ID"))
	if nodeID == "" {
		nodeID = uuid.NewString()
	}

	var configPath string
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath, err = filepath.Abs(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CONFIG_PATH: %w", err)
		}
	}

	reloadInterval := defaultReloadInterval
	if v := os.Getenv("RELOAD_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RELOAD_INTERVAL_MS: %w", err)
		}
		if ms <= 0 {
			return nil, fmt.Errorf("RELOAD_INTERVAL_MS must be positive, got %d", ms)
		}
		reloadInterval = time.Duration(ms) * time.Millisecond
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}
	if _, err := levelOption(logLevel); err != nil {
		return nil, err
	}

	return &MembershipConfig{
		HTTPPort:       httpPort,
		GRPCPort:       grpcPort,
		ConfigPath:     configPath,
		NodeID:         nodeID,
		NodeHost:       nodeHost,
		NodePort:       nodePort,
		ReloadInterval: reloadInterval,
		LogLevel:       logLevel,
	}, nil
}

func requiredPort(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}
