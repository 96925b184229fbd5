package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingSessionDataKey   = "session_data"
	LoggingResponseKey      = "response"
	LoggingRequestKey       = "request"
	LoggingResponseCountKey = "response_count"

	LoggingDoctorIDKey      = "doctor_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingSlotDateKey      = "slot_date"
	LoggingSlotTimeKey      = "slot_time"
	LoggingWindowDaysKey    = "window_days"
	LoggingOrderIDKey       = "order_id"
	LoggingOrderStatusKey   = "order_status"
	LoggingAmountKey        = "amount"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
)
