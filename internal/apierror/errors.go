package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 는 오류 분류다.
type Kind string

const (
	// KindAuthorization 는 인증 실패 분류다 (유일한 401 계열).
	KindAuthorization Kind = "AUTHORIZATION"
	// KindValidation 는 요청 구조 검증 실패 분류다.
	KindValidation Kind = "VALIDATION"
	// KindRouting 는 문항 라우팅 실패 분류다.
	KindRouting Kind = "ROUTING"
	// KindAdapter 는 백엔드 응답 해석 실패 분류다.
	KindAdapter Kind = "ADAPTER"
	// KindTransport 는 백엔드 호출 자체의 실패 분류다.
	KindTransport Kind = "TRANSPORT"
)

// Error 는 내부 표준 오류 타입이다.
// 모든 분류는 요청 전체를 종료시킨다. 내부 재시도는 없다.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

// Error 는 오류 메시지를 반환한다.
func (e *Error) Error() string {
	return e.Message
}

// WireText 는 응답 문서의 error 요소 본문 텍스트를 반환한다.
// 원 프로토콜의 "Error: ..." 접두 형식을 유지한다.
func (e *Error) WireText() string {
	return "Error: " + e.Message
}

// FromError 는 임의의 오류를 내부 오류 타입으로 변환한다.
// 분류되지 않은 오류는 전송 실패(400)로 접는다.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	return NewTransport(err.Error())
}

// NewMissingAuthorization 는 Authorization 헤더 부재 오류를 생성한다.
func NewMissingAuthorization() *Error {
	return &Error{
		Kind:    KindAuthorization,
		Status:  http.StatusUnauthorized,
		Message: "Missing Authorization header!",
	}
}

// NewInvalidAuthorization 는 Authorization 헤더 불일치 오류를 생성한다.
func NewInvalidAuthorization() *Error {
	return &Error{
		Kind:    KindAuthorization,
		Status:  http.StatusUnauthorized,
		Message: "Invalid Authorization header!",
	}
}

// NewValidation 는 요청 구조 검증 오류를 생성한다.
func NewValidation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewUnknownItem 는 라우팅 테이블에 없는 문항 오류를 생성한다.
func NewUnknownItem(itemID string) *Error {
	return &Error{
		Kind:    KindRouting,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Unknown item %s in request!", itemID),
	}
}

// NewNoAdapter 는 등록되지 않은 백엔드 유형 오류를 생성한다.
func NewNoAdapter(backendType string) *Error {
	return &Error{
		Kind:    KindRouting,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("No adapter for backend type %s in request!", backendType),
	}
}

// NewAdapter 는 백엔드 응답에서 기대 필드가 빠진 오류를 생성한다.
func NewAdapter(message string) *Error {
	return &Error{
		Kind:    KindAdapter,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewTransport 는 백엔드 호출 실패 오류를 생성한다.
func NewTransport(message string) *Error {
	return &Error{
		Kind:    KindTransport,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}
