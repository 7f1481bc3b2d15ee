package service

import (
	"context"
	"strings"

	"clinical-notes-be/internal/pkg/logger"
	"clinical-notes-be/pkg/marker"
	"clinical-notes-be/pkg/metering"
)

type ITokenService interface {
	// CheckAdmission reports whether the user may start a generation request.
	CheckAdmission(ctx context.Context, userID string) bool
	// Settle deducts the per-section cost after a generation completes. It
	// returns the remaining balance, or metering.SettlementFailed when the
	// deduction was skipped or refused.
	Settle(ctx context.Context, userID, aggregatedText, generatedText string) int
}

// usageLedger is the slice of metering.Client the token service depends on.
type usageLedger interface {
	CheckTokens(ctx context.Context, userID string) bool
	ReportUsage(ctx context.Context, userID string, amount int) int
}

type tokenService struct {
	ledger         usageLedger
	costPerSection int
	logger         logger.ILogger
}

func NewTokenService(ledger usageLedger, costPerSection int, log logger.ILogger) ITokenService {
	return &tokenService{
		ledger:         ledger,
		costPerSection: costPerSection,
		logger:         log,
	}
}

func (s *tokenService) CheckAdmission(ctx context.Context, userID string) bool {
	return s.ledger.CheckTokens(ctx, userID)
}

// Settle charges for the request unless the pipeline degraded. Any failure
// marker in the extracted or generated text means the user did not get what
// they paid for, so the deduction is skipped entirely.
func (s *tokenService) Settle(ctx context.Context, userID, aggregatedText, generatedText string) int {
	if hit, found := firstFailureMarker(aggregatedText, generatedText); found {
		s.logger.Info("token", "skipping usage deduction: request degraded", map[string]interface{}{
			"user":   userID,
			"marker": hit,
		})
		return metering.SettlementFailed
	}
	return s.ledger.ReportUsage(ctx, userID, s.costPerSection)
}

func firstFailureMarker(texts ...string) (string, bool) {
	for _, text := range texts {
		for _, m := range marker.Failures {
			if strings.Contains(text, m) {
				return m, true
			}
		}
	}
	return "", false
}
