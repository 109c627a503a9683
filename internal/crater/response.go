package crater

import "crater-gateway/internal/apierror"

// ContentTypeXML 는 성공/오류 구분 없이 모든 회신에 쓰는 Content-Type 이다.
const ContentTypeXML = "text/xml"

// ErrorDocument 는 임의 오류를 회신 문서로 바꾸는 단일 변환 지점이다.
// clientID는 해석된 경우에만 넘긴다.
func ErrorDocument(clientID string, err error) (int, string) {
	apiErr := apierror.FromError(err)
	body, buildErr := AssembleError(clientID, apiErr.Status, apiErr.WireText())
	if buildErr != nil {
		// 문서 구조가 고정이라 실제로는 도달하지 않는 경로다.
		return apiErr.Status, `<crater-results><tracking id="` + TrackingID + `"/></crater-results>`
	}
	return apiErr.Status, body
}
