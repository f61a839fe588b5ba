package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

type PlannerServiceInterface interface {
	SuggestDestinations(ctx context.Context, activity string, excludeIDs []string) ([]response_models.Destination, error)
	GeneratePlan(ctx context.Context, params response_models.PlanParams) (*response_models.Plan, error)
}

type PlannerService struct {
	generator utils.TextGenerator
}

func NewPlannerService(generator utils.TextGenerator) PlannerServiceInterface {
	return &PlannerService{generator: generator}
}

// SuggestDestinations asks for three domestic destinations matching the
// activity. Previously seen ids are listed so the model avoids repeats;
// this is best-effort, not enforced beyond id comparison on merge.
func (p *PlannerService) SuggestDestinations(ctx context.Context, activity string, excludeIDs []string) ([]response_models.Destination, error) {
	var prompt strings.Builder
	prompt.WriteString("あなたは旅行プランナーです。\n")
	fmt.Fprintf(&prompt, "ユーザーが「%s」をしたいと考えています。\n", activity)
	if len(excludeIDs) > 0 {
		fmt.Fprintf(&prompt, "ただし、以下の旅行先は既に提案済みです: %s\n\n", strings.Join(excludeIDs, ", "))
		prompt.WriteString("新しい日本国内の旅行先を3つ提案してください。\n")
	} else {
		prompt.WriteString("この活動ができる日本国内の旅行先を3つ提案してください。\n")
	}
	prompt.WriteString(`
以下のJSON形式で返してください（マークダウンのコードブロックは不要）:
{
  "destinations": [
    {
      "id": "ユニークID（例: hokkaido-furano）",
      "name": "都道府県名 + 地域名（例: 北海道富良野）",
      "nameEn": "画像検索用の英語名 (例: Furano Hokkaido)",
      "description": "簡潔な説明（80文字以内）",
      "bestSeason": "ベストシーズン",
      "estimatedCost": 概算費用（数値のみ、例: 50000）,
      "highlights": ["特徴1", "特徴2", "特徴3"]
    }
  ]
}
`)

	raw, err := p.generator.Generate(ctx, prompt.String())
	if err != nil {
		return nil, err
	}

	data, err := utils.ParseJSON[struct {
		Destinations []response_models.Destination `json:"destinations"`
	}](raw)
	if err != nil {
		return nil, err
	}
	return data.Destinations, nil
}

// GeneratePlan produces the full day-by-day itinerary. The budget passed
// in params is the generation ceiling; the model's budget total is taken
// as returned and never reconciled here.
func (p *PlannerService) GeneratePlan(ctx context.Context, params response_models.PlanParams) (*response_models.Plan, error) {
	days, err := utils.DayCount(params.StartDate, params.EndDate)
	if err != nil {
		return nil, &utils.ValidationError{Fields: map[string]string{"dates": err.Error()}}
	}

	raw, err := p.generator.Generate(ctx, buildItineraryPrompt(params, days))
	if err != nil {
		return nil, err
	}

	plan, err := utils.ParseJSON[response_models.Plan](raw)
	if err != nil {
		return nil, err
	}
	if err := normalizePlan(&plan); err != nil {
		return nil, err
	}

	plan.GeneratedAt = utils.FormatRFC3339JST(utils.NowJST())
	plan.Params = params
	return &plan, nil
}

func buildItineraryPrompt(params response_models.PlanParams, days int) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "あなたはプロの旅行プランナーです。以下の条件で%d日間の詳細な旅行プランを作成してください:\n\n", days)
	prompt.WriteString("【条件】\n")
	fmt.Fprintf(&prompt, "- 目的地: %s\n", params.Destination)
	fmt.Fprintf(&prompt, "- メインアクティビティ: %s\n", params.Activity)
	fmt.Fprintf(&prompt, "- 旅行期間: %s から %s (%d日間)\n", params.StartDate, params.EndDate, days)
	fmt.Fprintf(&prompt, "- 予算: %d円\n", params.Budget)
	if params.Preferences != "" {
		fmt.Fprintf(&prompt, "- その他の要望: %s\n", params.Preferences)
	}
	prompt.WriteString(`
以下のJSON形式で詳細なプランを返してください（マークダウンのコードブロックは不要）:
{
  "summary": "プランの概要（100文字以内）",
  "itinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "title": "1日目のテーマ",
      "items": [
        {
          "time": "09:00-12:00",
          "activity": "活動名",
          "location": "場所",
          "lat": 緯度（数値）,
          "lng": 経度（数値）,
          "cost": 金額（数値）,
          "description": "詳細説明",
          "notes": "注意事項やTips"
        }
      ]
    }
  ],
  "hotels": [
    {
      "name": "ホテル名",
      "type": "ホテル・旅館・民宿など",
      "address": "住所",
      "pricePerNight": 一泊あたりの料金（数値）,
      "totalNights": 宿泊数,
      "rating": 4.5,
      "amenities": ["アメニティ1", "アメニティ2"],
      "reason": "このホテルを選んだ理由"
    }
  ],
  "budgetBreakdown": {
    "transportation": 交通費（数値）,
    "accommodation": 宿泊費（数値）,
    "activities": アクティビティ費（数値）,
    "meals": 食費（数値）,
    "other": その他（数値）,
    "total": 合計金額（数値）
  },
  "tips": ["旅行のアドバイス1", "アドバイス2", "アドバイス3"],
  "packingList": ["持ち物1", "持ち物2", "持ち物3"]
}
`)
	fmt.Fprintf(&prompt, "\n注意: 予算%d円を大幅に超えないように計画してください。\n", params.Budget)
	prompt.WriteString("出力言語: 日本語\n")
	return prompt.String()
}

// normalizePlan enforces the structural contract on decoded model output:
// a non-empty itinerary whose days end up sorted and renumbered from 1,
// item costs defaulting to 0, and non-negative budget categories.
func normalizePlan(plan *response_models.Plan) error {
	if len(plan.Itinerary) == 0 {
		return fmt.Errorf("%w: itinerary has no days", utils.ErrMalformedResponse)
	}

	sort.SliceStable(plan.Itinerary, func(i, j int) bool {
		return plan.Itinerary[i].Day < plan.Itinerary[j].Day
	})
	for i := range plan.Itinerary {
		plan.Itinerary[i].Day = i + 1
		if plan.Itinerary[i].Items == nil {
			plan.Itinerary[i].Items = []response_models.PlanItem{}
		}
		for j := range plan.Itinerary[i].Items {
			if plan.Itinerary[i].Items[j].Cost < 0 {
				plan.Itinerary[i].Items[j].Cost = 0
			}
		}
	}

	b := plan.BudgetBreakdown
	for _, v := range []int{b.Transportation, b.Accommodation, b.Activities, b.Meals, b.Other, b.Total} {
		if v < 0 {
			return fmt.Errorf("%w: negative budget category", utils.ErrMalformedResponse)
		}
	}
	return nil
}
