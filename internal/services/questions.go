package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/repos"
	"github.com/vettia/assessment-backend/internal/types"
)

const (
	traceQuestionsLoaded   = "questions_loaded"
	traceCategoryFetchFail = "category_fetch_failed"
	traceOptionsShuffled   = "options_shuffled"
)

// QuestionFetcher returns a stage's question set with options and, for
// opinion stages, trait-category names. An empty question list is a valid,
// successful result, never an error.
type QuestionFetcher interface {
	FetchForStage(ctx context.Context, stage *types.Stage, trace *ResolutionTrace) ([]*types.Question, error)
}

type questionFetcher struct {
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	categoryRepo repos.CategoryRepo
	randomizer   *OptionRandomizer
}

func NewQuestionFetcher(log *logger.Logger, questionRepo repos.QuestionRepo, categoryRepo repos.CategoryRepo, randomizer *OptionRandomizer) QuestionFetcher {
	return &questionFetcher{
		log:          log.With("service", "QuestionFetcher"),
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		randomizer:   randomizer,
	}
}

func (s *questionFetcher) FetchForStage(ctx context.Context, stage *types.Stage, trace *ResolutionTrace) ([]*types.Question, error) {
	var (
		questions  []*types.Question
		categories []*types.Category
		catErr     error
	)

	// The category catalog is an auxiliary grouping fetch: its failure is
	// recorded and treated as "no data", never aborting the resolution.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questionRepo.ListByStageID(gctx, nil, stage.ID)
		return err
	})
	if stage.QuestionType == types.QuestionTypeOpinionMultiple {
		g.Go(func() error {
			categories, catErr = s.categoryRepo.ListAll(gctx, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if catErr != nil {
		s.log.Warn("Category catalog fetch failed", "stage_id", stage.ID, "error", catErr)
		trace.Append(traceCategoryFetchFail, map[string]any{"error": catErr.Error()})
	}

	trace.Append(traceQuestionsLoaded, map[string]any{"stage_id": stage.ID.String(), "count": len(questions)})
	if len(questions) == 0 {
		return questions, nil
	}

	if stage.QuestionType == types.QuestionTypeOpinionMultiple {
		backfillCategoryNames(questions, categories)
		s.randomizer.ShuffleQuestions(questions)
		trace.Append(traceOptionsShuffled, map[string]any{"question_count": len(questions)})
	}
	return questions, nil
}

func backfillCategoryNames(questions []*types.Question, categories []*types.Category) {
	if len(categories) == 0 {
		return
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID.String()] = c.Name
	}
	for _, q := range questions {
		for i := range q.Options {
			opt := &q.Options[i]
			if opt.CategoryName == "" && opt.CategoryID != nil {
				opt.CategoryName = names[opt.CategoryID.String()]
			}
		}
	}
}
