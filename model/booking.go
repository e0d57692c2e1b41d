package model

// Booking is the policy an account uses to disambiguate which lot(s) a
// reducing posting consumes when its cost specification matches more than
// one lot.
type Booking int

const (
	// BookingStrict rejects ambiguous matches with an error. This is the
	// default for accounts that do not declare a method.
	BookingStrict Booking = iota

	// BookingStrictWithSize behaves like BookingStrict, but when exactly one
	// candidate lot has the same size as the reduction it is accepted.
	BookingStrictWithSize

	// BookingNone disables matching entirely and accepts the creation of
	// mixed inventories.
	BookingNone

	// BookingAverage merges all matching lots to their average cost before
	// and after the reduction.
	BookingAverage

	// BookingFIFO consumes the oldest lots first.
	BookingFIFO

	// BookingLIFO consumes the newest lots first.
	BookingLIFO
)

// ParseBooking parses a booking method token as written on an open
// directive. The accepted tokens are STRICT, STRICT_WITH_SIZE, NONE,
// AVERAGE, FIFO and LIFO; anything else fails with
// *UnknownBookingTokenError.
func ParseBooking(token string) (Booking, error) {
	switch token {
	case "STRICT":
		return BookingStrict, nil
	case "STRICT_WITH_SIZE":
		return BookingStrictWithSize, nil
	case "NONE":
		return BookingNone, nil
	case "AVERAGE":
		return BookingAverage, nil
	case "FIFO":
		return BookingFIFO, nil
	case "LIFO":
		return BookingLIFO, nil
	default:
		return BookingStrict, &UnknownBookingTokenError{Token: token}
	}
}

// String returns the token form of the booking method.
func (b Booking) String() string {
	switch b {
	case BookingStrict:
		return "STRICT"
	case BookingStrictWithSize:
		return "STRICT_WITH_SIZE"
	case BookingNone:
		return "NONE"
	case BookingAverage:
		return "AVERAGE"
	case BookingFIFO:
		return "FIFO"
	case BookingLIFO:
		return "LIFO"
	default:
		return "STRICT"
	}
}
