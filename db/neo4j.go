// api/db/neo4j.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4j_config "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/config"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

var Neo4jDriver neo4j.DriverWithContext

func InitNeo4j(cfg config.Neo4jConfiguration) error {
	logger.Info("Connecting to Neo4j at URI", zap.String("uri", cfg.URI))

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j_config.Config) {
			c.MaxConnectionLifetime = 30 * time.Minute
			c.MaxConnectionPoolSize = 50
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	Neo4jDriver = driver
	logger.Info("Successfully connected to Neo4j")
	return nil
}

func CloseNeo4j() {
	if Neo4jDriver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Neo4jDriver.Close(ctx); err != nil {
		logger.Error("Error closing Neo4j connection", zap.Error(err))
	} else {
		logger.Info("Neo4j connection closed successfully")
	}
}

// Neo4jRunner executes Cypher through the driver's managed transactions.
type Neo4jRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jRunner(driver neo4j.DriverWithContext, database string) *Neo4jRunner {
	return &Neo4jRunner{driver: driver, database: database}
}

// Read runs a read query and returns each record as a map.
func (r *Neo4jRunner) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	return r.run(ctx, cypher, params, neo4j.ExecuteQueryWithReadersRouting())
}

// Write runs a write query and returns each record as a map.
func (r *Neo4jRunner) Write(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	return r.run(ctx, cypher, params, neo4j.ExecuteQueryWithWritersRouting())
}

func (r *Neo4jRunner) run(ctx context.Context, cypher string, params map[string]any, routing neo4j.ExecuteQueryConfigurationOption) ([]map[string]any, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{routing}
	if r.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(r.database))
	}

	result, err := neo4j.ExecuteQuery(ctx, r.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute cypher: %w", err)
	}

	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}
