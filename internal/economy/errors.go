package economy

// EconomyError is a sentinel error type for economy-level failures.
type EconomyError string

func (e EconomyError) Error() string { return string(e) }

const (
	// ErrInsufficientFunds indicates the balance cannot cover the requested
	// transfer or purchase. Never retried; surfaced to the user.
	ErrInsufficientFunds EconomyError = "insufficient funds"

	// ErrItemNotFound indicates no shop item matched the given name or ID.
	ErrItemNotFound EconomyError = "item not found"

	// ErrInvalidAmount indicates a non-positive amount where a positive one is required.
	ErrInvalidAmount EconomyError = "amount must be positive"

	// ErrSelfTransfer indicates sender and receiver are the same account.
	ErrSelfTransfer EconomyError = "cannot transfer to yourself"
)
