// Package recipe holds the recipe contract shared with the generation
// service: the prompt, the response schema, and validation of what comes
// back.
package recipe

import (
	"fmt"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

// DefaultCount is how many suggestions a prompt asks for.
const DefaultCount = 3

// promptTemplate is kept in Korean; the model answers in the prompt's language.
const promptTemplate = `냉장고에 있는 다음 재료들을 활용하여 %s 식사로 적합한 요리 레시피 %d가지를 추천해줘: %s.
각 레시피는 요리명, 간단한 설명, 필요한 재료 목록, 조리 순서, 예상 소요 시간, 난이도(%s, %s, %s 중 하나)를 포함해야 해. 한국어로 응답해줘.`

// BuildPrompt embeds the ingredients and meal time into the request text.
// A count below one falls back to DefaultCount.
func BuildPrompt(ingredients domain.IngredientList, meal domain.MealTime, count int) string {
	if count < 1 {
		count = DefaultCount
	}
	return fmt.Sprintf(promptTemplate,
		meal, count, ingredients,
		domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard,
	)
}
