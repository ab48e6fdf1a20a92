package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultAuthURL      = "https://edge.microsoft.com/translate/auth"
	DefaultTranslateURL = "https://api-edge.cognitive.microsofttranslator.com/translate"
	DefaultAPIVersion   = "3.0"
	DefaultTimeout      = 30 * time.Second

	maxTraceBody = 2 << 20
)

type Endpoints struct {
	AuthURL      string
	TranslateURL string
	APIVersion   string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		AuthURL:      DefaultAuthURL,
		TranslateURL: DefaultTranslateURL,
		APIVersion:   DefaultAPIVersion,
	}
}

type TraceEvent struct {
	Stage      string
	Method     string
	URL        string
	StatusCode int
	DurationMs int64
	Request    string
	Response   string
	Error      string
}

type API struct {
	ep    Endpoints
	http  *resty.Client
	trace func(TraceEvent)
}

func New(ep Endpoints, timeout time.Duration) *API {
	def := DefaultEndpoints()
	if ep.AuthURL == "" {
		ep.AuthURL = def.AuthURL
	}
	if ep.TranslateURL == "" {
		ep.TranslateURL = def.TranslateURL
	}
	if ep.APIVersion == "" {
		ep.APIVersion = def.APIVersion
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(log.New(io.Discard))
	return &API{ep: ep, http: rc}
}

// SetLogger routes resty's own warnings through l.
func (a *API) SetLogger(l *log.Logger) {
	if l != nil {
		a.http.SetLogger(l)
	}
}

func (a *API) SetTrace(fn func(TraceEvent)) {
	a.trace = fn
}

func (a *API) Endpoints() Endpoints {
	return a.ep
}

func (a *API) emitTrace(ev TraceEvent) {
	if a.trace != nil {
		a.trace(ev)
	}
}

func traceBody(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if !utf8.Valid(b) {
		if len(b) > maxTraceBody {
			b = b[:maxTraceBody]
		}
		sum := sha256.Sum256(b)
		return fmt.Sprintf("<binary bytes=%d sha256=%s>", len(b), hex.EncodeToString(sum[:]))
	}
	if len(b) > maxTraceBody {
		// cut on a rune boundary
		n := maxTraceBody
		for n > 0 && !utf8.RuneStart(b[n]) {
			n--
		}
		b = b[:n]
	}
	return string(b)
}

// FetchToken asks the auth endpoint for a bearer token. The token is the raw
// response body.
func (a *API) FetchToken(ctx context.Context) (string, error) {
	body, status, err := a.do(ctx, http.MethodGet, a.http.R(), a.ep.AuthURL, nil)
	if err != nil {
		return "", err
	}
	if status/100 != 2 {
		return "", newStatusError(status, body)
	}
	tok := strings.TrimSpace(string(body))
	if tok == "" {
		return "", errors.New("auth endpoint returned an empty body")
	}
	return tok, nil
}

// Translate posts one batch of items. It returns *RemoteError for structured
// failures, *StatusError for any other non-2xx response and *DecodeError
// when a 2xx body cannot be decoded.
func (a *API) Translate(ctx context.Context, token string, in TranslateRequest) ([]TranslateItem, error) {
	payload, err := json.Marshal(in.Items)
	if err != nil {
		return nil, err
	}
	r := a.http.R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(map[string]string{
			"from":                  in.From,
			"to":                    in.To,
			"api-version":           a.ep.APIVersion,
			"includeSentenceLength": "true",
		}).
		SetBody(payload)
	body, status, err := a.do(ctx, http.MethodPost, r, a.ep.TranslateURL, payload)
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, parseFailure(status, body)
	}
	var out []TranslateItem
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{Body: traceBody(body), Err: err}
	}
	return out, nil
}

func parseFailure(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		env.Error.StatusCode = status
		return env.Error
	}
	return newStatusError(status, body)
}

func newStatusError(status int, body []byte) *StatusError {
	return &StatusError{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Body:       strings.TrimSpace(string(body)),
	}
}

func (a *API) do(ctx context.Context, method string, r *resty.Request, url string, reqBody []byte) ([]byte, int, error) {
	r.SetContext(ctx)
	a.emitTrace(TraceEvent{
		Stage:   "request",
		Method:  method,
		URL:     url,
		Request: traceBody(reqBody),
	})
	start := time.Now()
	resp, err := r.Execute(method, url)
	if err != nil {
		a.emitTrace(TraceEvent{
			Stage:      "error",
			Method:     method,
			URL:        url,
			DurationMs: time.Since(start).Milliseconds(),
			Request:    traceBody(reqBody),
			Error:      err.Error(),
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, err
	}
	body := resp.Body()
	a.emitTrace(TraceEvent{
		Stage:      "response",
		Method:     method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		DurationMs: time.Since(start).Milliseconds(),
		Request:    traceBody(reqBody),
		Response:   traceBody(bytes.TrimSpace(body)),
	})
	return body, resp.StatusCode(), nil
}
