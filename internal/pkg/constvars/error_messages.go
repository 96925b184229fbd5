package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"min":       "must be at least %s characters long",
	"max":       "maximum at %s characters long",
	"gt":        "must be greater than %s",
	"gte":       "must be greater than or equal to %s",
	"lte":       "must be less than or equal to %s",
	"uuid":      "must be a valid UUID",
	"slot_date": "must be a day_month_year date key (e.g. 3_11_2025)",
	"slot_time": "must be a half-hour clock label (e.g. 10:30 AM)",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
	"gt":  true,
	"gte": true,
	"lte": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientDoctorNotAvailable            = "doctor is currently not accepting bookings"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientSlotAlreadyBooked             = "this slot has just been booked, please pick another one"
	ErrClientSlotNotBookable               = "this slot is not open for booking"
	ErrClientAppointmentAlreadyTerminal    = "appointment is already cancelled or completed"
	ErrClientAppointmentAlreadyCancelled   = "appointment is already cancelled"
	ErrClientAppointmentAlreadyPaid        = "appointment is already paid"
	ErrClientPaymentOrderNotFound          = "payment order not found"
	ErrClientPaymentGatewayUnavailable     = "payment service is unavailable, please try again"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON     = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON   = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseTime     = "cannot parse time into the given format"
	ErrDevValidationFailed    = "request body validation failed"
	ErrDevURLParamValidation  = "invalid or missing URL parameter: %s"
	ErrDevMissingRequestID    = "request ID is missing from request context"
	ErrDevMissingSessionData  = "session data is missing from request context"
	ErrDevServerDeadline      = "the server took too long to process the request"
	ErrDevAuthTokenMissing    = "authorization token is missing"
	ErrDevAuthTokenInvalid    = "authorization token is invalid or expired"
	ErrDevAuthSigningMethod   = "unexpected JWT signing method"
	ErrDevAuthInvalidSession  = "session not found or expired"
	ErrDevRoleTypeDoesntMatch = "caller role does not allow this operation"

	ErrDevDoctorNotFound             = "doctor document does not exist"
	ErrDevDoctorNotAvailable         = "doctor availability flag is off"
	ErrDevPatientNotFound            = "patient document does not exist"
	ErrDevAppointmentNotFound        = "appointment document does not exist"
	ErrDevSlotAlreadyBooked          = "slot label already present in doctor's reserved set"
	ErrDevSlotNotBookable            = "slot is in the past or outside booking hours"
	ErrDevAppointmentNotOwned        = "caller is not the appointment's patient nor an admin"
	ErrDevAppointmentAlreadyTerminal = "appointment already in a terminal state"
	ErrDevAppointmentAlreadyPaid     = "appointment payment flag already true"
	ErrDevPaymentOrderNotFound       = "payment processor does not know this order"
	ErrDevPaymentGatewayRequest      = "payment processor request failed"
	ErrDevPaymentGatewayDecode       = "cannot decode payment processor response"

	ErrDevDBFailedToFindDocument     = "failed to find document in MongoDB"
	ErrDevDBFailedToInsertDocument   = "failed to insert document into MongoDB"
	ErrDevDBFailedToUpdateDocument   = "failed to update document in MongoDB"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from MongoDB"
	ErrDevDBFailedToCountDocuments   = "failed to count documents in MongoDB"

	ErrDevRedisSet    = "failed to set value in redis"
	ErrDevRedisGet    = "failed to get value from redis"
	ErrDevRedisDelete = "failed to delete value from redis"
)
