package service

import "errors"

// Domain errors. Every one is raised before any state is written.
var (
	ErrUnauthorized         = errors.New("lottery: only admin")
	ErrInvalidEntrancePrice = errors.New("lottery: invalid enter price value")
	ErrGameNotFound         = errors.New("lottery: game doesn't exist")
	ErrGameAlreadyRaffled   = errors.New("lottery: game already raffled")
	ErrInvalidPaymentAmount = errors.New("lottery: invalid value sent")
	ErrInvalidFeeRate       = errors.New("lottery: fee should be between 5 and 25 percent")
	ErrGameFull             = errors.New("lottery: game reached maximum entrants")
	ErrAmountOverflow       = errors.New("lottery: amount overflows ledger balance")
)

// IsDomainError reports whether err is one of the ledger's precondition failures
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrUnauthorized,
		ErrInvalidEntrancePrice,
		ErrGameNotFound,
		ErrGameAlreadyRaffled,
		ErrInvalidPaymentAmount,
		ErrInvalidFeeRate,
		ErrGameFull,
		ErrAmountOverflow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
