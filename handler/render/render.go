package render

import (
	"encoding/json"
	"net/http"

	"keeper/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	JSONStatus(w, http.StatusOK, v)
}

// JSONStatus render with json and status code
func JSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error, non twirp errors are mapped by codes.FromError
func Error(w http.ResponseWriter, err error) {
	twerr := codes.FromError(err).(twirp.Error)

	resp := errorResponse{
		Code: codes.Of(twerr),
		Msg:  twerr.Msg(),
	}

	if twerr.Code() == twirp.Internal {
		if ResponseErrorMessageAsHint {
			resp.Hint = resp.Msg
		}
		resp.Msg = "internal error"
	}

	JSONStatus(w, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), resp)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, codes.With(twirp.NewError(twirp.InvalidArgument, err.Error()), codes.InvalidArguments))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, msg string) {
	Error(w, twirp.NotFoundError(msg))
}
