package hira

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ListResponse is the JSON body of the list-info endpoint.
type ListResponse struct {
	Header *ResponseHeader `json:"header"`
	Body   ResponseBody    `json:"body"`
}

// ResponseHeader carries the service-level result embedded in the JSON
// body. It is present on some deployments and absent on others.
type ResponseHeader struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// ResponseBody wraps the item page. A null or missing item list marks
// the end of the collection.
type ResponseBody struct {
	Items      []DrugItem `json:"items"`
	NumOfRows  int        `json:"numOfRows"`
	PageNo     int        `json:"pageNo"`
	TotalCount int        `json:"totalCount"`
}

// DrugItem is one drug entry as served upstream.
type DrugItem struct {
	ItemName           string     `json:"itemNm"`
	MaxAmount          FlexString `json:"maxAmt"`
	MedicineCode       FlexString `json:"medcinCd"`
	MainIngredientCode FlexString `json:"mainIngrCd"`
	MainIngredientName string     `json:"mainIngrNm"`
	CompanyName        string     `json:"entrpsNm"`
	DivisionCode       FlexString `json:"divCd"`
}

// FlexString tolerates upstream fields that arrive as either a JSON
// string or a bare number depending on the month's data load.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	*f = FlexString(s)
	return nil
}

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hira: http status %d: %s", e.StatusCode, e.Body)
}

// ParseError reports a body that is not JSON. Upstream serves HTML error
// pages when the caller's IP is blocked or the service is down.
type ParseError struct {
	Err  error
	Body string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hira: response is not JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LogicError reports a well-formed body whose embedded result code is
// not a success code.
type LogicError struct {
	Code    string
	Message string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("hira: service error %s: %s", e.Code, e.Message)
}
