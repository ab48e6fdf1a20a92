package client

import "fmt"

// RateLimitCode is the error code the translate endpoint uses when the
// caller is being throttled.
const RateLimitCode = 429001

type TextItem struct {
	Text string `json:"Text"`
}

type TranslateRequest struct {
	From  string
	To    string
	Items []TextItem
}

func NewTranslateRequest(from, to string, texts []string) TranslateRequest {
	items := make([]TextItem, len(texts))
	for i, t := range texts {
		items[i] = TextItem{Text: t}
	}
	return TranslateRequest{From: from, To: to, Items: items}
}

type DetectedLanguage struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

type Translation struct {
	Text    string           `json:"text"`
	To      string           `json:"to"`
	SentLen map[string][]int `json:"sentLen,omitempty"`
}

type TranslateItem struct {
	DetectedLanguage *DetectedLanguage `json:"detectedLanguage,omitempty"`
	Translations     []Translation     `json:"translations"`
}

type errorEnvelope struct {
	Error *RemoteError `json:"error"`
}

// RemoteError is a structured failure reported by the translate endpoint.
type RemoteError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d (http %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *RemoteError) RateLimited() bool {
	return e.Code == RateLimitCode
}

// StatusError is a non-2xx response whose body is not a structured error.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}

// DecodeError means a 2xx response body did not have the expected shape.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode translate response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
