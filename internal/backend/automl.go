package backend

import (
	"sort"

	"github.com/mitchellh/mapstructure"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/routing"
)

// AutoMLAdapter 는 flat JSON 채점기용 어댑터다. 요청은 응답 좌표 네 필드,
// 응답은 label 필드 하나가 계약의 전부다.
type AutoMLAdapter struct{}

type automlPayload struct {
	ClientID   string `json:"clientId"`
	ItemID     string `json:"itemId"`
	ResponseID string `json:"responseId"`
	Answer     string `json:"answer"`
}

type automlAdvisory struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Type 는 레지스트리 키를 반환한다.
func (AutoMLAdapter) Type() routing.BackendType {
	return routing.BackendAutoML
}

// BuildRequest 는 응답 좌표를 flat JSON 본문으로 바꾼다.
func (AutoMLAdapter) BuildRequest(_ routing.Route, params Params) Request {
	return Request{
		Payload: automlPayload{
			ClientID:   params.ClientID,
			ItemID:     params.ItemID,
			ResponseID: params.ResponseID,
			Answer:     params.AnswerText,
		},
	}
}

// ParseResponse 는 label 을 점수로 뽑고 나머지 스칼라 필드를 부가 속성으로
// 넘긴다. label 은 숫자든 문자열이든 수신한 표기 그대로 통과한다.
func (AutoMLAdapter) ParseResponse(responseID string, raw []byte) (crater.NormalizedScore, error) {
	payload, err := decodeJSONMap(raw)
	if err != nil {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing label in automl question rater response!")
	}

	label, ok := payload["label"]
	if !ok {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing label in automl question rater response!")
	}
	score, ok := stringifyScalar(label)
	if !ok {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing label in automl question rater response!")
	}

	result := crater.NormalizedScore{ResponseID: responseID, Score: score}

	for name, value := range payload {
		if name == "label" || name == "advisories" {
			continue
		}
		if text, scalar := stringifyScalar(value); scalar {
			result.Extra = append(result.Extra, crater.Attr{Name: name, Value: text})
		}
	}
	sort.Slice(result.Extra, func(i, j int) bool {
		return result.Extra[i].Name < result.Extra[j].Name
	})

	if rawAdvisories, ok := payload["advisories"]; ok {
		var advisories []automlAdvisory
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &advisories,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err == nil && decoder.Decode(rawAdvisories) == nil {
			for _, advisory := range advisories {
				result.Advisories = append(result.Advisories, crater.Advisory{
					Code: advisory.Code,
					Text: advisory.Text,
				})
			}
		}
	}

	return result, nil
}
