package submitter

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"keeper/core"
	"keeper/pkg/id"
	"keeper/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// Config relay submitter config
type Config struct {
	Endpoint string
	Signers  []string
}

type relaySubmitter struct {
	endpoint string
	signers  []string

	mu   sync.Mutex
	next int
}

// New submitter posting liquidate_borrow calls to a transaction relay, signers are used round robin
func New(cfg Config) core.LiquidationSubmitter {
	return &relaySubmitter{
		endpoint: cfg.Endpoint,
		signers:  cfg.Signers,
	}
}

// liquidateBorrowCall relay request body
type liquidateBorrowCall struct {
	Call               string `json:"call"`
	Signer             string `json:"signer"`
	TraceID            string `json:"trace_id"`
	Borrower           string `json:"borrower"`
	LoanCurrency       string `json:"loan_currency"`
	RepayAmount        string `json:"repay_amount"`
	CollateralCurrency string `json:"collateral_currency"`
}

func (s *relaySubmitter) CanSign(ctx context.Context) bool {
	return len(s.signers) > 0
}

func (s *relaySubmitter) signer() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	signer := s.signers[s.next%len(s.signers)]
	s.next++
	return signer
}

func (s *relaySubmitter) LiquidateBorrow(ctx context.Context, l *core.Liquidation) (string, error) {
	if !s.CanSign(ctx) {
		return "", core.ErrNoSignerAvailable
	}

	signer := s.signer()
	call := liquidateBorrowCall{
		Call:               "liquidate_borrow",
		Signer:             signer,
		TraceID:            TraceID(l),
		Borrower:           l.Borrower,
		LoanCurrency:       l.LoanCurrency,
		RepayAmount:        l.RepayAmount.String(),
		CollateralCurrency: l.CollateralCurrency,
	}

	logger.FromContext(ctx).WithField("trace_id", call.TraceID).Debugln("submit liquidate borrow")

	url := s.endpoint + "/transactions"
	if _, err := resthttp.Execute(resthttp.WithRequestID(ctx, call.TraceID), http.MethodPost, url, call, nil); err != nil {
		// the relay already accepted this trace
		if resthttp.IsStatus(err, http.StatusConflict) {
			return signer, nil
		}

		return signer, err
	}

	return signer, nil
}

// TraceID deterministic trace id of a liquidation, identical actions share it
func TraceID(l *core.Liquidation) string {
	return id.UUIDFromString(fmt.Sprintf("liquidate-%s-%s-%s-%s", l.Borrower, l.LoanCurrency, l.CollateralCurrency, l.RepayAmount))
}

type dryRun struct{}

// DryRun submitter that only logs
func DryRun() core.LiquidationSubmitter {
	return dryRun{}
}

func (dryRun) CanSign(ctx context.Context) bool {
	return true
}

func (dryRun) LiquidateBorrow(ctx context.Context, l *core.Liquidation) (string, error) {
	logger.FromContext(ctx).WithField("trace_id", TraceID(l)).Infoln("dry run, skip liquidate borrow of", l.Borrower)
	return "dry-run", nil
}
