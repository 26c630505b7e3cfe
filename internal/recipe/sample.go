package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/logger"
)

// Compile-time interface check.
var _ domain.GenerationService = (*SampleService)(nil)

// SampleOption configures the SampleService.
type SampleOption func(*SampleService)

// WithLatency makes every call wait d before answering, so the loading
// state is visible when running offline.
func WithLatency(d time.Duration) SampleOption {
	return func(s *SampleService) { s.latency = d }
}

// SampleService answers every prompt with the same built-in recipes,
// encoded as JSON text the way a hosted model would return them. Used
// when no API key is configured.
type SampleService struct {
	recipes []domain.Recipe
	latency time.Duration
	log     *logger.Logger
}

// NewSampleService creates a service preloaded with built-in recipes.
func NewSampleService(log *logger.Logger, opts ...SampleOption) *SampleService {
	s := &SampleService{log: log}
	s.seed()
	for _, o := range opts {
		o(s)
	}
	return s
}

// GenerateContent ignores the prompt and schema and returns the built-in
// batch.
func (s *SampleService) GenerateContent(ctx context.Context, prompt string, schema *domain.Schema) (string, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	data, err := json.Marshal(s.recipes)
	if err != nil {
		return "", fmt.Errorf("sample: marshal recipes: %w", err)
	}
	s.log.Debug("sample: answering with %d recipes (%d bytes)", len(s.recipes), len(data))
	return string(data), nil
}

// Recipes returns a copy of the built-in batch.
func (s *SampleService) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// seed populates the service with built-in recipes.
func (s *SampleService) seed() {
	s.recipes = []domain.Recipe{
		s.rolledOmelette(),
		s.braisedTofu(),
		s.scallionFriedRice(),
	}
	s.log.Debug("seeded %d sample recipes", len(s.recipes))
}

func (s *SampleService) rolledOmelette() domain.Recipe {
	return domain.Recipe{
		ID:          "rolled-omelette",
		Name:        "대파 계란말이",
		Description: "송송 썬 대파를 넣어 부드럽게 말아낸 기본 반찬.",
		Ingredients: []string{"달걀 3개", "대파 1/3대", "소금 약간", "식용유 1큰술"},
		Instructions: []string{
			"달걀을 풀고 소금으로 간한다.",
			"대파를 잘게 썰어 달걀물에 섞는다.",
			"약불로 달군 팬에 기름을 두르고 달걀물을 얇게 붓는다.",
			"반쯤 익으면 한쪽부터 돌돌 말고, 남은 달걀물을 부어 반복한다.",
			"한 김 식힌 뒤 먹기 좋게 썬다.",
		},
		EstimatedTime: "15분",
		Difficulty:    domain.DifficultyEasy,
	}
}

func (s *SampleService) braisedTofu() domain.Recipe {
	return domain.Recipe{
		ID:          "braised-tofu",
		Name:        "두부조림",
		Description: "노릇하게 부친 두부에 매콤달콤한 양념을 졸여낸 밥반찬.",
		Ingredients: []string{"두부 1모", "대파 1/2대", "간장 3큰술", "고춧가루 1큰술", "다진 마늘 1작은술", "설탕 1작은술", "물 100ml"},
		Instructions: []string{
			"두부를 1cm 두께로 썰어 키친타월로 물기를 뺀다.",
			"팬에 기름을 두르고 두부 양면을 노릇하게 부친다.",
			"간장, 고춧가루, 마늘, 설탕, 물을 섞어 양념장을 만든다.",
			"두부 위에 양념장을 끼얹고 대파를 올려 중약불에서 졸인다.",
			"국물이 자작해지면 불을 끈다.",
		},
		EstimatedTime: "25분",
		Difficulty:    domain.DifficultyMedium,
	}
}

func (s *SampleService) scallionFriedRice() domain.Recipe {
	return domain.Recipe{
		ID:          "scallion-fried-rice",
		Name:        "파기름 달걀볶음밥",
		Description: "대파로 낸 향긋한 기름에 달걀과 밥을 볶아낸 한 그릇 요리.",
		Ingredients: []string{"밥 1공기", "달걀 2개", "대파 1대", "간장 1큰술", "굴소스 1작은술", "식용유 2큰술"},
		Instructions: []string{
			"대파를 송송 썰어 기름에 볶아 파기름을 낸다.",
			"팬 한쪽에 달걀을 깨 넣고 스크램블한다.",
			"밥을 넣고 센불에서 고루 볶는다.",
			"팬 가장자리에 간장을 둘러 눌린 뒤 굴소스로 간을 맞춘다.",
		},
		EstimatedTime: "20분",
		Difficulty:    domain.DifficultyEasy,
	}
}
