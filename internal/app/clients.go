package app

import (
	"fmt"

	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type Clients struct {
	Graph *neo4jdb.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	graph, err := neo4jdb.New(neo4jdb.ConfigFromEnv(), log)
	if err != nil {
		return Clients{}, fmt.Errorf("init neo4j client: %w", err)
	}

	return Clients{Graph: graph}, nil
}
