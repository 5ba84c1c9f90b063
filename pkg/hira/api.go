package hira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// bodySnippetLen bounds how much of a failing response body is kept for
// diagnostics.
const bodySnippetLen = 1000

// ListDrugs fetches one page of the reimbursement list. Failures are
// reported as typed errors (StatusError, ParseError, LogicError) so the
// caller can distinguish terminal conditions; transport errors pass
// through unwrapped.
func (c *Client) ListDrugs(ctx context.Context, pageNo, numOfRows int) (*ListResponse, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", strconv.Itoa(numOfRows))
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("type", "json")

	reqURL := c.config.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Int("page", pageNo).
			Int("status_code", resp.StatusCode).
			Int("body_len", len(body)).
			Msg("[HIRA] page response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	var list ListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &ParseError{Err: err, Body: snippet(body)}
	}

	if list.Header != nil && !IsSuccessCode(list.Header.ResultCode) {
		return nil, &LogicError{Code: list.Header.ResultCode, Message: list.Header.ResultMsg}
	}

	return &list, nil
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLen {
		body = body[:bodySnippetLen]
	}
	return string(body)
}
