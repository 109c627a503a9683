package backend

import (
	"github.com/mitchellh/mapstructure"

	"crater-gateway/internal/apierror"
	"crater-gateway/internal/crater"
	"crater-gateway/internal/routing"
)

// AzureAdapter 는 Azure ML classic execute 엔드포인트용 어댑터다.
// 요청과 응답 모두 열 이름/값 행렬 형태의 표 구조를 쓴다.
type AzureAdapter struct{}

type azureInput struct {
	ColumnNames []string `json:"ColumnNames"`
	Values      [][]any  `json:"Values"`
}

type azurePayload struct {
	Inputs           map[string]azureInput `json:"Inputs"`
	GlobalParameters map[string]any        `json:"GlobalParameters"`
}

type azureResults struct {
	Output1 struct {
		Value struct {
			ColumnNames []string `json:"ColumnNames"`
			Values      [][]any  `json:"Values"`
		} `json:"value"`
	} `json:"output1"`
}

// Type 는 레지스트리 키를 반환한다.
func (AzureAdapter) Type() routing.BackendType {
	return routing.BackendAzure
}

// BuildRequest 는 응답 좌표를 한 행짜리 입력 행렬로 바꾸고 bearer 토큰을
// 붙인다.
func (AzureAdapter) BuildRequest(route routing.Route, params Params) Request {
	request := Request{
		Payload: azurePayload{
			Inputs: map[string]azureInput{
				"input1": {
					ColumnNames: []string{"clientId", "itemId", "responseId", "answer"},
					Values:      [][]any{{params.ClientID, params.ItemID, params.ResponseID, params.AnswerText}},
				},
			},
			GlobalParameters: map[string]any{},
		},
	}
	if route.BearerToken != "" {
		request.Headers = map[string]string{"Authorization": "Bearer " + route.BearerToken}
	}
	return request
}

// ParseResponse 는 출력 행렬의 첫 행 첫 열을 점수로, 둘째 열이 있으면
// confidence 부가 속성으로 뽑는다.
func (AzureAdapter) ParseResponse(responseID string, raw []byte) (crater.NormalizedScore, error) {
	payload, err := decodeJSONMap(raw)
	if err != nil {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing Results in azure question rater response!")
	}

	rawResults, ok := payload["Results"]
	if !ok {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing Results in azure question rater response!")
	}

	var results azureResults
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &results,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing Results in azure question rater response!")
	}
	if err := decoder.Decode(rawResults); err != nil {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing Results in azure question rater response!")
	}

	values := results.Output1.Value.Values
	if len(values) == 0 || len(values[0]) == 0 {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing output values in azure question rater response!")
	}
	row := values[0]

	score, ok := stringifyScalar(row[0])
	if !ok {
		return crater.NormalizedScore{}, apierror.NewAdapter("Missing output values in azure question rater response!")
	}

	result := crater.NormalizedScore{ResponseID: responseID, Score: score}
	if len(row) > 1 {
		if confidence, scalar := stringifyScalar(row[1]); scalar {
			result.Extra = append(result.Extra, crater.Attr{Name: "confidence", Value: confidence})
		}
	}
	return result, nil
}
