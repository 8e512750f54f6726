package errs

// Cross-layer sentinels. Use case specific sentinels live next to their use case.
var (
	ErrDomainValidation = New("domain validation error")

	// Infrastructure faults, surfaced as 500
	ErrDatabaseOperationFailed = New("database operation failed")
	ErrStoreUnavailable        = New("slot store unavailable")
)
