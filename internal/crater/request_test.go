package crater

import (
	"errors"
	"strings"
	"testing"

	"crater-gateway/internal/apierror"
)

func TestDecodeValid(t *testing.T) {
	body := `<crater-request><client id="cc"/><items><item id="1"><responses><response id="456">hi</response></responses></item></items></crater-request>`

	req, clientID, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clientID != "cc" || req.ClientID != "cc" {
		t.Fatalf("unexpected client id: %s", req.ClientID)
	}
	if len(req.Items) != 1 || req.Items[0].ItemID != "1" {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
	responses := req.Items[0].Responses
	if len(responses) != 1 || responses[0].ResponseID != "456" || responses[0].AnswerText != "hi" {
		t.Fatalf("unexpected responses: %+v", responses)
	}
}

func TestDecodeCDATAAnswer(t *testing.T) {
	body := "<crater-request includeRNS=\"N\">\n\t<client id=\"cc\"/>\n\t<items>\n\t  <item id=\"1\">\n\t    <responses>\n\t      <response id=\"456\">\n\t        <![CDATA[this is a test]]>\n\t      </response>\n\t    </responses>\n\t  </item>\n\t</items>\n</crater-request>"

	req, _, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(req.Items[0].Responses[0].AnswerText) != "this is a test" {
		t.Fatalf("unexpected answer: %q", req.Items[0].Responses[0].AnswerText)
	}
}

func TestDecodeKeepsRawAnswerText(t *testing.T) {
	// 답안은 검사만 공백 제거로 하고 원문 그대로 백엔드로 넘어간다.
	body := `<crater-request><client id="cc"/><items><item id="1"><responses><response id="456">  padded answer  </response></responses></item></items></crater-request>`

	req, _, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Items[0].Responses[0].AnswerText != "  padded answer  " {
		t.Fatalf("answer text altered: %q", req.Items[0].Responses[0].AnswerText)
	}
}

func TestDecodeValidationOrder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		message  string
		clientID string
	}{
		{
			name:    "empty body",
			body:    "",
			message: "Missing body element in lambda event!",
		},
		{
			name:    "whitespace body",
			body:    "   \n\t",
			message: "Missing body element in lambda event!",
		},
		{
			name:    "malformed markup",
			body:    "<crater-request><client",
			message: "Missing crater-request top level element in request!",
		},
		{
			name:    "wrong root element",
			body:    "<test />",
			message: "Missing crater-request top level element in request!",
		},
		{
			name:    "missing client",
			body:    "<crater-request><test /></crater-request>",
			message: "Missing crater-request.client element in request!",
		},
		{
			name:    "missing client id",
			body:    "<crater-request><client/></crater-request>",
			message: "Missing id attribute in crater-request.client element in request!",
		},
		{
			name:     "missing items",
			body:     `<crater-request><client id="cc"/><test /></crater-request>`,
			message:  "Missing crater-request.items element in request!",
			clientID: "cc",
		},
		{
			name:     "missing item id",
			body:     `<crater-request><client id="cc"/><items><item><test /></item></items></crater-request>`,
			message:  "Missing item id in request!",
			clientID: "cc",
		},
		{
			name:     "missing item responses",
			body:     `<crater-request><client id="cc"/><items><item id="1"><test /></item></items></crater-request>`,
			message:  "Missing item responses in request!",
			clientID: "cc",
		},
		{
			name:     "empty responses container",
			body:     `<crater-request><client id="cc"/><items><item id="1"><responses/></item></items></crater-request>`,
			message:  "Missing item responses in request!",
			clientID: "cc",
		},
		{
			name:     "missing response id",
			body:     `<crater-request><client id="cc"/><items><item id="1"><responses><response /></responses></item></items></crater-request>`,
			message:  "Missing response id in request!",
			clientID: "cc",
		},
		{
			name:     "missing answer",
			body:     `<crater-request><client id="cc"/><items><item id="1"><responses><response id="456">   </response></responses></item></items></crater-request>`,
			message:  "Missing answer in request!",
			clientID: "cc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, clientID, err := Decode(tc.body)
			if req != nil {
				t.Fatalf("expected nil request")
			}
			if clientID != tc.clientID {
				t.Fatalf("expected client id %q, got %q", tc.clientID, clientID)
			}
			var apiErr *apierror.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected api error, got %v", err)
			}
			if apiErr.Kind != apierror.KindValidation {
				t.Fatalf("expected validation kind, got %s", apiErr.Kind)
			}
			if apiErr.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, apiErr.Message)
			}
		})
	}
}

func TestDecodeFirstViolationWins(t *testing.T) {
	// 첫 번째 문항의 위반이 두 번째 문항의 위반보다 먼저 보고된다.
	body := `<crater-request><client id="cc"/><items><item><test/></item><item id="2"><responses><response/></responses></item></items></crater-request>`

	_, _, err := Decode(body)
	apiErr := apierror.FromError(err)
	if apiErr.Message != "Missing item id in request!" {
		t.Fatalf("expected first violation, got %q", apiErr.Message)
	}
}

func TestDecodeMultipleItemsPreservesOrder(t *testing.T) {
	body := `<crater-request><client id="cc"/><items>` +
		`<item id="b"><responses><response id="1">x</response><response id="2">y</response></responses></item>` +
		`<item id="a"><responses><response id="3">z</response></responses></item>` +
		`</items></crater-request>`

	req, _, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Items[0].ItemID != "b" || req.Items[1].ItemID != "a" {
		t.Fatalf("item order not preserved: %+v", req.Items)
	}
	if req.Items[0].Responses[1].ResponseID != "2" {
		t.Fatalf("response order not preserved: %+v", req.Items[0].Responses)
	}
}
