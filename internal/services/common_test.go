package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Test{},
		&types.Stage{},
		&types.TestStage{},
		&types.Question{},
		&types.Option{},
		&types.Category{},
		&types.Process{},
		&types.ProcessStage{},
		&types.Candidate{},
		&types.TraitGroup{},
		&types.PersonalityTrait{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedTestWithStages creates a test plus one stage and link per given order.
// Each stage gets two questions with three stored-order options.
func seedTestWithStages(t *testing.T, db *gorm.DB, questionType types.QuestionType, orders ...int) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	log := newTestLogger(t)
	stageRepo := repos.NewStageRepo(db, log)
	linkRepo := repos.NewTestStageRepo(db, log)
	ctx := context.Background()

	test := &types.Test{ID: uuid.New(), Title: "seeded test"}
	if err := db.Create(test).Error; err != nil {
		t.Fatalf("create test: %v", err)
	}

	stageIDs := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		stage := &types.Stage{
			ID:           uuid.New(),
			Title:        fmt.Sprintf("stage order %d", order),
			Description:  "seeded",
			QuestionType: questionType,
		}
		if _, err := stageRepo.Create(ctx, nil, []*types.Stage{stage}); err != nil {
			t.Fatalf("create stage: %v", err)
		}
		link := &types.TestStage{ID: uuid.New(), TestID: test.ID, StageID: stage.ID, Order: order}
		if _, err := linkRepo.Create(ctx, nil, []*types.TestStage{link}); err != nil {
			t.Fatalf("create test stage: %v", err)
		}
		seedQuestions(t, db, stage.ID, 2, 3)
		stageIDs = append(stageIDs, stage.ID)
	}
	return test.ID, stageIDs
}

func seedQuestions(t *testing.T, db *gorm.DB, stageID uuid.UUID, questionCount, optionCount int) {
	t.Helper()
	log := newTestLogger(t)
	questionRepo := repos.NewQuestionRepo(db, log)

	questions := make([]*types.Question, 0, questionCount)
	for qi := 0; qi < questionCount; qi++ {
		q := &types.Question{
			ID:       uuid.New(),
			StageID:  stageID,
			Text:     fmt.Sprintf("question %d", qi),
			Position: qi,
		}
		for oi := 0; oi < optionCount; oi++ {
			q.Options = append(q.Options, types.Option{
				ID:         uuid.New(),
				QuestionID: q.ID,
				Text:       fmt.Sprintf("option %d", oi),
				Position:   oi,
			})
		}
		questions = append(questions, q)
	}
	if _, err := questionRepo.Create(context.Background(), nil, questions); err != nil {
		t.Fatalf("create questions: %v", err)
	}
}
