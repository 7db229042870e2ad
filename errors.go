package paging

import "github.com/friendsofgo/errors"

var (
	// ErrInvalidArgument is returned for paging arguments that can never
	// produce a page: negative sizes, After positioned past Before, or a
	// relational slice requested without an ordering.
	ErrInvalidArgument = errors.New("invalid paging argument")

	// ErrDecode is returned when a cursor string is not one this package produced.
	ErrDecode = errors.New("invalid cursor")

	// ErrMissingTotalCount is returned when a total count is read from a
	// result that was built without computing it.
	ErrMissingTotalCount = errors.New("total count was requested but not computed")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
