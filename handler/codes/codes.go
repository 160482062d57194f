package codes

import (
	"strconv"

	"keeper/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = int(core.ErrCodeInvalidArgument)
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Of custom code of twirp error, falls back to Get
func Of(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	return Get(twerr.Code())
}

// FromError convert keeper errors to twirp errors
func FromError(err error) error {
	if _, ok := err.(twirp.Error); ok {
		return err
	}

	code := core.CodeOf(err)

	var twerr twirp.Error
	switch code {
	case core.ErrCodeMarketNotFound, core.ErrCodePriceNotFound:
		twerr = twirp.NotFoundError(err.Error())
	case core.ErrCodeInvalidPrice, core.ErrCodeRateModelNotSet:
		twerr = twirp.NewError(twirp.FailedPrecondition, err.Error())
	case core.ErrCodeComputation:
		twerr = twirp.InternalErrorWith(err)
	default:
		return twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}
