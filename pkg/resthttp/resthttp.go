package resthttp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	logrus.Debugln("request", method, url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return 0, err
	}

	logrus.Debugln("response", url, r.Status())

	return r.StatusCode(), ParseResponse(r, resp)
}

// Error error response body
type Error struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
}

func (e *Error) Error() string {
	return e.Msg
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	//fail
	if !r.IsSuccess() {
		e := &Error{Status: r.StatusCode()}
		if err := json.Unmarshal(r.Body(), e); err != nil || e.Msg == "" {
			e.Msg = strings.TrimSpace(string(r.Body()))
		}
		if e.Msg == "" {
			e.Msg = r.Status()
		}
		return e
	}

	//success
	if obj != nil {
		if err := json.Unmarshal(r.Body(), obj); err != nil {
			return err
		}
	}

	return nil
}

// IsStatus check if err is an error response with the status code
func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}
