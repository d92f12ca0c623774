package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// User roles
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusApproved  = 1
	BookingStatusDenied    = 2
	BookingStatusCancelled = 3
)

// Verification status
const (
	VerificationNone     = 0
	VerificationPending  = 1
	VerificationApproved = 2
)

// EV charger levels
const (
	ChargerLevel1 = "L1"
	ChargerLevel2 = "L2"
	ChargerLevel3 = "L3"
)

// EV connector types
const (
	ConnectorJ1772   = "J1772"
	ConnectorCCS     = "CCS"
	ConnectorCHAdeMO = "CHAdeMO"
	ConnectorTesla   = "Tesla"
)

// Parking spot sizes
const (
	SizeStandard   = "STANDARD"
	SizeCompact    = "COMPACT"
	SizeOversize   = "OVERSIZE"
	SizeCommercial = "COMMERCIAL"
)

// Recurring-search spans beyond these produce a warning message
const (
	MaxDailySpanDays = 90
	MaxWeeklySpan    = 52
)
