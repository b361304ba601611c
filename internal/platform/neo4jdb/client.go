package neo4jdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/equilibra/equilibra-backend/internal/platform/envutil"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type Config struct {
	URI            string
	Username       string
	Password       string
	Database       string
	TimeoutSeconds int
	MaxPoolSize    int
}

func ConfigFromEnv() Config {
	username := strings.TrimSpace(os.Getenv("NEO4J_USERNAME"))
	if username == "" {
		username = envutil.Str("NEO4J_USER", "neo4j")
	}
	return Config{
		URI:            strings.TrimSpace(os.Getenv("NEO4J_URI")),
		Username:       username,
		Password:       strings.TrimSpace(os.Getenv("NEO4J_PASSWORD")),
		Database:       strings.TrimSpace(os.Getenv("NEO4J_DATABASE")),
		TimeoutSeconds: envutil.Int("NEO4J_TIMEOUT_SECONDS", 10),
		MaxPoolSize:    envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
	}
}

// Client holds the one driver handle shared across requests. Each call gets
// its own scoped session, released on every exit path.
type Client struct {
	cfg Config
	log *logger.Logger

	mu     sync.Mutex
	driver neo4j.DriverWithContext
}

func New(cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4jdb: NEO4J_URI is required")
	}

	c := &Client{cfg: cfg, log: log.With("client", "Neo4jDB")}

	driver, err := c.dial()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	c.driver = driver
	return c, nil
}

func (c *Client) dial() (neo4j.DriverWithContext, error) {
	auth := neo4j.BasicAuth(c.cfg.Username, c.cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(c.cfg.URI, auth, func(config *neo4j.Config) {
		config.MaxConnectionPoolSize = c.cfg.MaxPoolSize
		config.SocketConnectTimeout = c.timeout()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}
	return driver, nil
}

func (c *Client) timeout() time.Duration {
	sec := c.cfg.TimeoutSeconds
	if sec <= 0 {
		sec = 10
	}
	return time.Duration(sec) * time.Second
}

func (c *Client) currentDriver() neo4j.DriverWithContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.driver
}

// TxWork runs inside one managed transaction on a scoped session.
type TxWork func(tx neo4j.ManagedTransaction) (any, error)

func (c *Client) ExecuteRead(ctx context.Context, work TxWork) (any, error) {
	return c.execute(ctx, neo4j.AccessModeRead, work)
}

func (c *Client) ExecuteWrite(ctx context.Context, work TxWork) (any, error) {
	return c.execute(ctx, neo4j.AccessModeWrite, work)
}

// execute runs work once and, on a connectivity failure (stale handle,
// expired session), re-dials the driver exactly once and retries. A second
// failure propagates unmodified; there is no further retry or backoff.
func (c *Client) execute(ctx context.Context, mode neo4j.AccessMode, work TxWork) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := c.runOnce(ctx, mode, work)
	if err == nil || !neo4j.IsConnectivityError(err) {
		return out, err
	}

	c.log.Warn("connectivity failure, reconnecting once", "error", err)
	if rErr := c.reconnect(ctx); rErr != nil {
		c.log.Error("reconnect failed", "error", rErr)
		return nil, err
	}
	return c.runOnce(ctx, mode, work)
}

func (c *Client) runOnce(ctx context.Context, mode neo4j.AccessMode, work TxWork) (any, error) {
	session := c.currentDriver().NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.cfg.Database,
	})
	defer session.Close(ctx)

	if mode == neo4j.AccessModeRead {
		return session.ExecuteRead(ctx, neo4j.ManagedTransactionWork(work))
	}
	return session.ExecuteWrite(ctx, neo4j.ManagedTransactionWork(work))
}

func (c *Client) reconnect(ctx context.Context) error {
	driver, err := c.dial()
	if err != nil {
		return err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return err
	}

	c.mu.Lock()
	old := c.driver
	c.driver = driver
	c.mu.Unlock()

	if old != nil {
		_ = old.Close(ctx)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	driver := c.driver
	c.driver = nil
	c.mu.Unlock()
	if driver == nil {
		return nil
	}
	return driver.Close(ctx)
}
