package codes

import (
	"errors"
	"fmt"
	"testing"

	"keeper/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		code   twirp.ErrorCode
		custom int
	}{
		{core.ErrMarketNotFound, twirp.NotFound, int(core.ErrCodeMarketNotFound)},
		{fmt.Errorf("%w: BTC", core.ErrPriceNotFound), twirp.NotFound, int(core.ErrCodePriceNotFound)},
		{core.ErrInvalidPrice, twirp.FailedPrecondition, int(core.ErrCodeInvalidPrice)},
		{core.ErrRateModelNotSet, twirp.FailedPrecondition, int(core.ErrCodeRateModelNotSet)},
		{core.ErrCalcExchangeRateFailed, twirp.Internal, int(core.ErrCodeComputation)},
		{errors.New("EOF"), twirp.Internal, 500},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			twerr, ok := FromError(c.err).(twirp.Error)
			assert.True(t, ok)
			assert.Equal(t, c.code, twerr.Code())
			assert.Equal(t, c.custom, Of(twerr))
		})
	}
}

func TestWith(t *testing.T) {
	twerr := With(twirp.InvalidArgumentError("round", "must be positive"), InvalidArguments).(twirp.Error)
	assert.Equal(t, InvalidArguments, Of(twerr))
	assert.Equal(t, InvalidArguments, Get(twirp.InvalidArgument))
	assert.Equal(t, 404, Get(twirp.NotFound))
}
