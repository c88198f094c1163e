package domain

// Параметры генерации слотов
const (
	DefaultSlotStepMinutes = 30
	MinSessionMinutes      = 15
	MaxSessionMinutes      = 480 // 8 hours
)

// Значения политики отмены по умолчанию (если тренер ещё не сохранял свою)
const (
	DefaultAdvanceNoticeHours           = 24
	DefaultMaxReschedulesPerSession     = 2
	DefaultRescheduleAdvanceNoticeHours = 12
)

// Ограничения валидации
const (
	MaxNoticeHours                = 720 // 30 days
	MaxReschedulesLimit           = 20
	MaxReasonLength               = 500
	MaxNotesLength                = 2000
	MaxGroupParticipants          = 200
	MaxBookingDeadlineHours       = 168 // 1 week
	MaxAvailabilityRowsPerTrainer = 200
)

// Форматы времени
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // для логов и уведомлений
)

// Причины отказа от штрафа
const (
	WaiverFirstTimeClient = "first-time client grace"
	WaiverEmergency       = "emergency cancellation"
)

// Категории уведомлений
const (
	NotifyBookingCreated        = "booking_created"
	NotifyBookingUpdated        = "booking_updated"
	NotifyBookingConfirmed      = "booking_confirmed"
	NotifyBookingCompleted      = "booking_completed"
	NotifyBookingCancelled      = "booking_cancelled"
	NotifyBookingNoShow         = "booking_no_show"
	NotifyBookingRescheduled    = "booking_rescheduled"
	NotifyGroupBookingConfirmed = "group_booking_confirmed"
	NotifyGroupWaitlisted       = "group_booking_waitlisted"
	NotifyGroupWaitlistPromoted = "group_waitlist_promoted"
	NotifyGroupBookingCancelled = "group_booking_cancelled"
)
