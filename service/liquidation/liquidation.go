package liquidation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LockKey key of the liquidation cycle lock
const LockKey = "liquidate::lock"

// Config liquidation engine config
type Config struct {
	// share of the smallest loan repaid per action, also the seize threshold
	LiquidateFactor fixed.Number
	LockTimeout     time.Duration
}

type service struct {
	marketStore  core.MarketStore
	borrowStore  core.BorrowStore
	depositStore core.DepositStore
	priceFeeder  core.PriceFeeder
	submitter    core.LiquidationSubmitter
	locker       core.Locker
	config       Config
}

// New new liquidation engine
func New(
	marketStr core.MarketStore,
	borrowStr core.BorrowStore,
	depositStr core.DepositStore,
	priceFeeder core.PriceFeeder,
	submitter core.LiquidationSubmitter,
	locker core.Locker,
	cfg Config,
) core.LiquidationService {
	return &service{
		marketStore:  marketStr,
		borrowStore:  borrowStr,
		depositStore: depositStr,
		priceFeeder:  priceFeeder,
		submitter:    submitter,
		locker:       locker,
		config:       cfg,
	}
}

// Run one cycle: lock, check signer, plan and submit
func (s *service) Run(ctx context.Context) ([]*core.Liquidation, error) {
	log := logger.FromContext(ctx).WithField("service", "liquidation")

	release, err := s.locker.TryLock(ctx, LockKey, s.config.LockTimeout)
	if err != nil {
		if !errors.Is(err, core.ErrLockUnavailable) {
			err = fmt.Errorf("%w: %v", core.ErrLockUnavailable, err)
		}

		return nil, err
	}
	defer release()

	if !s.submitter.CanSign(ctx) {
		return nil, core.ErrNoSignerAvailable
	}

	liquidations, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	if len(liquidations) == 0 {
		log.Infoln("no available accounts for liquidation")
		return nil, nil
	}

	for _, l := range liquidations {
		log := log.WithFields(logrus.Fields{
			"borrower":            l.Borrower,
			"loan_currency":       l.LoanCurrency,
			"repay_amount":        l.RepayAmount.String(),
			"collateral_currency": l.CollateralCurrency,
		})

		signer, err := s.submitter.LiquidateBorrow(ctx, l)
		if err != nil {
			log.WithError(err).Errorln("failed to submit liquidate borrow")
			continue
		}

		log.WithField("signer", signer).Infoln("submitted liquidate borrow, borrower:", l.Borrower)
	}

	return liquidations, nil
}

// Plan value all accounts and select at most one action per account
func (s *service) Plan(ctx context.Context) ([]*core.Liquidation, error) {
	valuations, err := s.Valuate(ctx)
	if err != nil {
		return nil, err
	}

	return s.selectLiquidations(ctx, valuations), nil
}

// Valuate borrow and collateral valuations of all accounts
func (s *service) Valuate(ctx context.Context) (*core.Valuations, error) {
	borrows, err := s.borrowStore.List(ctx)
	if err != nil {
		return nil, err
	}

	deposits, err := s.depositStore.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.valuate(ctx, borrows, deposits)
}

// ValuateAccount valuations of a single account
func (s *service) ValuateAccount(ctx context.Context, account string) (*core.Valuations, error) {
	borrows, err := s.borrowStore.FindByAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	deposits, err := s.depositStore.FindByAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	return s.valuate(ctx, borrows, deposits)
}

func (s *service) valuate(ctx context.Context, borrows []*core.Borrow, deposits []*core.Deposit) (*core.Valuations, error) {
	v, err := s.newValuator(ctx)
	if err != nil {
		return nil, err
	}

	return &core.Valuations{
		Borrows:     v.foldBorrows(ctx, borrows),
		Collaterals: v.foldCollaterals(ctx, deposits),
	}, nil
}

func (s *service) selectLiquidations(ctx context.Context, valuations *core.Valuations) []*core.Liquidation {
	log := logger.FromContext(ctx).WithField("service", "liquidation")
	factor := s.config.LiquidateFactor

	accounts := make([]string, 0, len(valuations.Borrows))
	for account := range valuations.Borrows {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	var liquidations []*core.Liquidation
	for _, account := range accounts {
		borrow := valuations.Borrows[account]
		collateral, ok := valuations.Collaterals[account]
		if !ok {
			continue
		}

		// equal totals are solvent
		if !borrow.Total.GreaterThan(collateral.Total) {
			continue
		}

		// smallest loan first
		loans := make([]*core.ValuationDetail, len(borrow.Details))
		copy(loans, borrow.Details)
		sort.SliceStable(loans, func(i, j int) bool {
			return loans[i].Value.LessThan(loans[j].Value)
		})
		loan := loans[0]

		threshold, err := factor.Mul(loan.Value)
		if err != nil {
			log.WithError(err).WithField("account", account).Warnln("liquidate threshold")
			continue
		}

		var seized *core.ValuationDetail
		for _, c := range collateral.Details {
			if c.Value.GreaterThanOrEqual(threshold) {
				seized = c
				break
			}
		}

		if seized == nil {
			log.WithField("account", account).Debugln("no collateral covers", threshold.String())
			continue
		}

		repayAmount, err := factor.Mul(loan.Amount)
		if err != nil {
			log.WithError(err).WithField("account", account).Warnln("liquidate repay amount")
			continue
		}

		liquidations = append(liquidations, &core.Liquidation{
			Borrower:           account,
			LoanCurrency:       loan.Currency,
			RepayAmount:        repayAmount,
			CollateralCurrency: seized.Currency,
		})
	}

	return liquidations
}
