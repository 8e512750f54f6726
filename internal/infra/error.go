package infra

import "court-booking/internal/pkg/errs"

// RepositoryErrorKind tells use cases what went wrong below them without
// exposing driver errors.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindStoreFailure       RepositoryErrorKind = "STORE_FAILURE"
)

// failureMarks are the kinds that mean the backend itself is unhealthy.
var failureMarks = map[RepositoryErrorKind]error{
	KindDBFailure:    errs.ErrDatabaseOperationFailed,
	KindStoreFailure: errs.ErrStoreUnavailable,
}

type RepositoryError struct {
	Kind  RepositoryErrorKind
	msg   string
	cause error
}

func (e RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e RepositoryError) Unwrap() error { return e.cause }

// WrapRepoErr classifies a storage error. Kind defaults to KindDBFailure.
// Failure kinds are also marked with the matching errs sentinel.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}

	var cause error
	if err != nil {
		cause = errs.Wrap(err, msg)
	}
	if mark, ok := failureMarks[k]; ok {
		if cause == nil {
			cause = errs.New(msg)
		}
		cause = errs.Mark(cause, mark)
	}
	return RepositoryError{Kind: k, msg: msg, cause: cause}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errs.As(err, &e) && e.Kind == kind
}
