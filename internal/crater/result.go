package crater

import (
	"encoding/xml"
	"fmt"
)

// TrackingID 는 모든 응답 문서에 붙는 고정 상관 식별자다.
const TrackingID = "12345"

// Attr 는 어댑터가 붙이는 자유 형식 응답 속성이다 (순서 유지).
type Attr struct {
	Name  string
	Value string
}

// Advisory 는 어댑터가 전달한 보조 하위 요소다.
type Advisory struct {
	Code string
	Text string
}

// NormalizedScore 는 백엔드별 응답을 정규화한 채점 결과다.
// Score는 백엔드에서 받은 값을 가공 없이 그대로 담는다.
type NormalizedScore struct {
	ResponseID string
	Score      string
	Extra      []Attr
	Advisories []Advisory
}

// ItemResult 는 문항 단위 채점 결과다.
type ItemResult struct {
	ItemID    string
	Responses []NormalizedScore
}

// ErrorResult 는 오류 문서의 error 요소다.
type ErrorResult struct {
	Code    int
	Message string
}

// ScoringResult 는 응답 문서 전체다. Items와 Error는 상호 배타적이다.
type ScoringResult struct {
	TrackingID string
	ClientID   string
	Items      []ItemResult
	Error      *ErrorResult
}

type resultsDoc struct {
	XMLName  xml.Name     `xml:"crater-results"`
	Tracking trackingElem `xml:"tracking"`
	Client   *clientElem  `xml:"client,omitempty"`
	Items    *itemsElem   `xml:"items,omitempty"`
	Error    *errorElem   `xml:"error,omitempty"`
}

type trackingElem struct {
	ID string `xml:"id,attr"`
}

type clientElem struct {
	ID string `xml:"id,attr"`
}

type itemsElem struct {
	Items []itemElem `xml:"item"`
}

type itemElem struct {
	ID        string        `xml:"id,attr"`
	Responses responsesElem `xml:"responses"`
}

type responsesElem struct {
	Responses []responseElem `xml:"response"`
}

type errorElem struct {
	Code int    `xml:"code,attr"`
	Text string `xml:",chardata"`
}

// responseElem 는 id/score 외의 속성이 어댑터마다 달라 수동으로 직렬화한다.
type responseElem struct {
	Score NormalizedScore
}

// MarshalXML 는 response 요소를 동적 속성과 함께 기록한다.
func (r responseElem) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr[:0],
		xml.Attr{Name: xml.Name{Local: "id"}, Value: r.Score.ResponseID},
		xml.Attr{Name: xml.Name{Local: "score"}, Value: r.Score.Score},
	)
	for _, extra := range r.Score.Extra {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: extra.Name}, Value: extra.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, advisory := range r.Score.Advisories {
		advisoryStart := xml.StartElement{
			Name: xml.Name{Local: "advisory"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "code"}, Value: advisory.Code}},
		}
		if err := e.EncodeToken(advisoryStart); err != nil {
			return err
		}
		if advisory.Text != "" {
			if err := e.EncodeToken(xml.CharData(advisory.Text)); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(advisoryStart.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML 는 response 요소의 동적 속성을 복원한다.
func (r *responseElem) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			r.Score.ResponseID = attr.Value
		case "score":
			r.Score.Score = attr.Value
		default:
			r.Score.Extra = append(r.Score.Extra, Attr{Name: attr.Name.Local, Value: attr.Value})
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "advisory" {
				var advisory struct {
					Code string `xml:"code,attr"`
					Text string `xml:",chardata"`
				}
				if err := d.DecodeElement(&advisory, &t); err != nil {
					return err
				}
				r.Score.Advisories = append(r.Score.Advisories, Advisory{Code: advisory.Code, Text: advisory.Text})
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// AssembleSuccess 는 성공 응답 문서를 직렬화한다.
// 출력 순서는 입력 순서를 그대로 따른다.
func AssembleSuccess(clientID string, items []ItemResult) (string, error) {
	doc := resultsDoc{
		Tracking: trackingElem{ID: TrackingID},
		Client:   &clientElem{ID: clientID},
		Items:    &itemsElem{},
	}
	for _, item := range items {
		encoded := itemElem{ID: item.ItemID}
		for _, score := range item.Responses {
			encoded.Responses.Responses = append(encoded.Responses.Responses, responseElem{Score: score})
		}
		doc.Items.Items = append(doc.Items.Items, encoded)
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(body), nil
}

// AssembleError 는 오류 응답 문서를 직렬화한다.
// clientID는 해석이 끝난 경우에만 비어있지 않으며, 그때만 client 요소를 남긴다.
func AssembleError(clientID string, status int, message string) (string, error) {
	doc := resultsDoc{
		Tracking: trackingElem{ID: TrackingID},
		Error:    &errorElem{Code: status, Text: message},
	}
	if clientID != "" {
		doc.Client = &clientElem{ID: clientID}
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal error results: %w", err)
	}
	return string(body), nil
}

// ParseResult 는 응답 문서를 구조로 복원한다. 왕복 검증과 클라이언트
// 측 소비자 테스트에 쓰인다.
func ParseResult(raw string) (*ScoringResult, error) {
	var doc resultsDoc
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	result := &ScoringResult{TrackingID: doc.Tracking.ID}
	if doc.Client != nil {
		result.ClientID = doc.Client.ID
	}
	if doc.Error != nil {
		result.Error = &ErrorResult{Code: doc.Error.Code, Message: doc.Error.Text}
		return result, nil
	}
	if doc.Items != nil {
		for _, item := range doc.Items.Items {
			decoded := ItemResult{ItemID: item.ID}
			for _, response := range item.Responses.Responses {
				decoded.Responses = append(decoded.Responses, response.Score)
			}
			result.Items = append(result.Items, decoded)
		}
	}
	return result, nil
}
