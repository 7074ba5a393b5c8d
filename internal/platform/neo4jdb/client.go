package neo4jdb

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

// Config carries fallback connection parameters, usually loaded from the
// data-source registry. Environment variables always win over these.
type Config struct {
	URI      string
	User     string
	Password string
	Database string
}

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

// New connects to Neo4j using NEO4J_* environment variables merged over the
// given fallback config. A missing password is the valid "graph disabled"
// state and yields (nil, nil), not an error.
func New(log *logger.Logger, fallback Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}

	uri := strings.TrimSpace(os.Getenv("NEO4J_URI"))
	if uri == "" {
		uri = strings.TrimSpace(fallback.URI)
	}
	if uri == "" {
		uri = "bolt://localhost:7687"
	}

	user := strings.TrimSpace(os.Getenv("NEO4J_USER"))
	if user == "" {
		user = strings.TrimSpace(fallback.User)
	}
	if user == "" {
		user = "neo4j"
	}

	password := strings.TrimSpace(os.Getenv("NEO4J_PASSWORD"))
	if password == "" {
		password = strings.TrimSpace(fallback.Password)
	}
	if password == "" {
		return nil, nil
	}

	database := strings.TrimSpace(os.Getenv("NEO4J_DATABASE"))
	if database == "" {
		database = strings.TrimSpace(fallback.Database)
	}

	timeoutSec := 10
	if v := strings.TrimSpace(os.Getenv("NEO4J_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	driver, err := connect(uri, user, password, timeoutSec)
	if err != nil {
		// Aura URIs occasionally fail strict cert checks; retry with the
		// self-signed-tolerant scheme before giving up.
		if strings.Contains(uri, "neo4j+s://") {
			altURI := strings.Replace(uri, "neo4j+s://", "neo4j+ssc://", 1)
			if altDriver, altErr := connect(altURI, user, password, timeoutSec); altErr == nil {
				log.Warn("neo4j strict TLS failed, connected with +ssc scheme", "uri", altURI)
				return &Client{Driver: altDriver, Database: database, log: log.With("client", "Neo4jDB")}, nil
			}
		}
		return nil, err
	}

	return &Client{
		Driver:   driver,
		Database: database,
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

func connect(uri, user, password string, timeoutSec int) (neo4j.DriverWithContext, error) {
	auth := neo4j.BasicAuth(user, password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(cfg *neo4j.Config) {
		cfg.SocketConnectTimeout = time.Duration(timeoutSec) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}
	return driver, nil
}

// Available reports whether the graph store is reachable right now.
// A nil client (graph disabled) is simply unavailable.
func (c *Client) Available(ctx context.Context) bool {
	if c == nil || c.Driver == nil {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return c.Driver.VerifyConnectivity(ctx) == nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
