package app

import (
	"github.com/equilibra/equilibra-backend/internal/data/repos/emotion"
	"github.com/equilibra/equilibra-backend/internal/data/repos/record"
	"github.com/equilibra/equilibra-backend/internal/data/repos/symptom"
	"github.com/equilibra/equilibra-backend/internal/data/repos/user"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
	"github.com/equilibra/equilibra-backend/internal/platform/neo4jdb"
)

type Repos struct {
	User          user.UserRepo
	Emotion       emotion.EmotionRepo
	Symptom       symptom.SymptomRepo
	ThoughtRecord record.ThoughtRecordRepo
	EmotionRecord record.EmotionRecordRepo
}

func wireRepos(graph *neo4jdb.Client, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          user.NewUserRepo(graph, log),
		Emotion:       emotion.NewEmotionRepo(graph, log),
		Symptom:       symptom.NewSymptomRepo(graph, log),
		ThoughtRecord: record.NewThoughtRecordRepo(graph, log),
		EmotionRecord: record.NewEmotionRecordRepo(graph, log),
	}
}
