// Package crater 는 crater 채점 프로토콜의 문서 타입과 코덱을 제공한다.
// 요소/속성 이름은 프로토콜 계약이므로 비트 단위로 고정된다.
package crater

import (
	"encoding/xml"
	"strings"

	"crater-gateway/internal/apierror"
)

// ScoringRequest 는 검증을 통과한 채점 요청이다.
type ScoringRequest struct {
	ClientID string
	Items    []ItemRequest
}

// ItemRequest 는 문항 단위 요청이다.
type ItemRequest struct {
	ItemID    string
	Responses []ResponseRequest
}

// ResponseRequest 는 응답(자유 서술 답안) 단위 요청이다.
type ResponseRequest struct {
	ResponseID string
	AnswerText string
}

// 느슨한 와이어 구조. 포인터로 요소 부재와 빈 요소를 구분한다.
type xmlRequest struct {
	XMLName xml.Name   `xml:"crater-request"`
	Client  *xmlClient `xml:"client"`
	Items   *xmlItems  `xml:"items"`
}

type xmlClient struct {
	ID string `xml:"id,attr"`
}

type xmlItems struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	ID        string        `xml:"id,attr"`
	Responses *xmlResponses `xml:"responses"`
}

type xmlResponses struct {
	Responses []xmlResponse `xml:"response"`
}

type xmlResponse struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

// Decode 는 원문 XML을 구조 검증된 요청으로 해석한다.
// 검증은 깊이 우선 순서로 첫 위반에서 중단한다. 두 번째 반환값은 해석
// 도중 확인된 client id로, 이후 검증이 실패해도 오류 문서에 남기기 위해
// 별도로 반환한다.
func Decode(raw string) (*ScoringRequest, string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, "", apierror.NewValidation("Missing body element in lambda event!")
	}

	var doc xmlRequest
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		// 비정형 입력은 별도 파스 오류가 아니라 루트 요소 부재로 접는다.
		return nil, "", apierror.NewValidation("Missing crater-request top level element in request!")
	}

	if doc.Client == nil {
		return nil, "", apierror.NewValidation("Missing crater-request.client element in request!")
	}
	clientID := strings.TrimSpace(doc.Client.ID)
	if clientID == "" {
		return nil, "", apierror.NewValidation("Missing id attribute in crater-request.client element in request!")
	}

	if doc.Items == nil {
		return nil, clientID, apierror.NewValidation("Missing crater-request.items element in request!")
	}

	items := make([]ItemRequest, 0, len(doc.Items.Items))
	for _, item := range doc.Items.Items {
		decoded, err := decodeItem(item)
		if err != nil {
			return nil, clientID, err
		}
		items = append(items, decoded)
	}

	return &ScoringRequest{ClientID: clientID, Items: items}, clientID, nil
}

func decodeItem(item xmlItem) (ItemRequest, error) {
	itemID := strings.TrimSpace(item.ID)
	if itemID == "" {
		return ItemRequest{}, apierror.NewValidation("Missing item id in request!")
	}
	if item.Responses == nil || len(item.Responses.Responses) == 0 {
		return ItemRequest{}, apierror.NewValidation("Missing item responses in request!")
	}

	responses := make([]ResponseRequest, 0, len(item.Responses.Responses))
	for _, response := range item.Responses.Responses {
		responseID := strings.TrimSpace(response.ID)
		if responseID == "" {
			return ItemRequest{}, apierror.NewValidation("Missing response id in request!")
		}
		// 공백뿐인 답안은 부재로 치지만, 통과한 답안은 원문 그대로 전달한다.
		if strings.TrimSpace(response.Text) == "" {
			return ItemRequest{}, apierror.NewValidation("Missing answer in request!")
		}
		responses = append(responses, ResponseRequest{ResponseID: responseID, AnswerText: response.Text})
	}

	return ItemRequest{ItemID: itemID, Responses: responses}, nil
}
