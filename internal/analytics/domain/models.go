package domain

// MetricsRequest carries the period selector for period-scoped bundles.
type MetricsRequest struct {
	Period Period
}

// DailyCount is a per-date bucket in a time series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GrowthMetrics approximates signup history. The schema records no user
// creation timestamps, so the daily series is synthesized by spreading the
// total user count evenly over the elapsed days with bounded jitter; it is
// non-deterministic and not a record of actual registrations.
type GrowthMetrics struct {
	DailySignups     []DailyCount `json:"daily_signups"`
	TotalUsers       int64        `json:"total_users"`
	NewUsersInPeriod int64        `json:"new_users_in_period"`
	GrowthRate       string       `json:"growth_rate"`
}

// RetentionPoint is one step of the placeholder retention schedule.
type RetentionPoint struct {
	Day           int    `json:"day"`
	RetentionRate string `json:"retention_rate"`
	RetainedCount int64  `json:"retained_count"`
	TotalNewUsers int64  `json:"total_new_users"`
}

// RetentionMetrics applies fixed day-1/7/30 rates to the total user count.
// These are hardcoded placeholders, not measured cohort return rates.
type RetentionMetrics struct {
	Retention []RetentionPoint `json:"retention"`
}

// UserMessageCount is a per-user message total with the user's name joined in.
type UserMessageCount struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// EngagementMetrics aggregates real message activity over the period.
type EngagementMetrics struct {
	MessagesPerUser    []UserMessageCount `json:"messages_per_user"`
	DailyActiveUsers   []DailyCount       `json:"daily_active_users"`
	AvgMessagesPerUser string             `json:"avg_messages_per_user"`
	TotalActiveUsers   int64              `json:"total_active_users"`
}

// ProviderStat is the account share of a single OAuth provider.
type ProviderStat struct {
	Provider   string `json:"provider"`
	Count      int64  `json:"count"`
	Percentage string `json:"percentage"`
}

// AuthPatternMetrics reports the linked-account distribution by provider.
type AuthPatternMetrics struct {
	Providers     []ProviderStat `json:"providers"`
	TotalAccounts int64          `json:"total_accounts"`
}

// DateHourCount is a (date, hour-of-day) message bucket.
type DateHourCount struct {
	Date  string `json:"date"`
	Hour  int    `json:"hour"`
	Count int64  `json:"count"`
}

// HourCount is an hour-of-day bucket across the whole period.
type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// MessageVolumeMetrics groups message traffic by day and hour.
type MessageVolumeMetrics struct {
	DailyMessages []DateHourCount `json:"daily_messages"`
	HourlyStats   []HourCount     `json:"hourly_stats"`
	TotalMessages int64           `json:"total_messages"`
}

// UserSegment is one user's row in the segmentation breakdown.
type UserSegment struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Balance      int64  `json:"balance"`
	MessageCount int64  `json:"message_count"`
	HasPaid      bool   `json:"has_paid"`
}

// SegmentSamples holds the first ten users of each segment.
type SegmentSamples struct {
	Free  []UserSegment `json:"free"`
	Paid  []UserSegment `json:"paid"`
	Heavy []UserSegment `json:"heavy"`
	Light []UserSegment `json:"light"`
}

// UserSegmentationMetrics splits the user base into free/paid and
// heavy/light cohorts. A user is "paid" when any payment record exists for
// them, regardless of its status.
type UserSegmentationMetrics struct {
	FreeUsers  int64          `json:"free_users"`
	PaidUsers  int64          `json:"paid_users"`
	HeavyUsers int64          `json:"heavy_users"`
	LightUsers int64          `json:"light_users"`
	Segments   SegmentSamples `json:"segments"`
}

// FunnelRates are the derived stage-to-stage conversion percentages.
type FunnelRates struct {
	RegistrationToFirstMessage  string `json:"registration_to_first_message"`
	FirstMessageToPaymentIntent string `json:"first_message_to_payment_intent"`
	PaymentIntentToCompletion   string `json:"payment_intent_to_completion"`
	OverallConversion           string `json:"overall_conversion"`
}

// ConversionFunnelMetrics counts users at each acquisition stage. The
// registrations step is not period-filtered while the later stages are;
// the resulting rates are reported unclamped.
type ConversionFunnelMetrics struct {
	Registrations    int64       `json:"registrations"`
	FirstMessage     int64       `json:"first_message"`
	PaymentIntent    int64       `json:"payment_intent"`
	CompletedPayment int64       `json:"completed_payment"`
	Rates            FunnelRates `json:"rates"`
}

// MonthlyRevenue is one year-month revenue bucket, in cents and currency units.
type MonthlyRevenue struct {
	Month             string  `json:"month"`
	Revenue           int64   `json:"revenue"`
	Transactions      int64   `json:"transactions"`
	RevenueInCurrency float64 `json:"revenue_in_currency"`
}

// RevenueMetrics aggregates succeeded payment records over the period.
type RevenueMetrics struct {
	MonthlyRevenue    []MonthlyRevenue `json:"monthly_revenue"`
	TotalRevenue      float64          `json:"total_revenue"`
	ARPU              string           `json:"arpu"`
	UniquePayingUsers int64            `json:"unique_paying_users"`
}

// TierStat is payment attempt/success counts for a single purchase tier.
type TierStat struct {
	Tier          string `json:"tier"`
	TotalAttempts int64  `json:"total_attempts"`
	Successful    int64  `json:"successful"`
	SuccessRate   string `json:"success_rate"`
}

// PaymentAnalysisMetrics reports per-tier outcomes and processing latency.
type PaymentAnalysisMetrics struct {
	TierStats             []TierStat `json:"tier_stats"`
	AverageProcessingTime string     `json:"average_processing_time"`
	ProcessingTimes       []float64  `json:"processing_times"`
}

// APIStat is request volume and success rate for one API action.
type APIStat struct {
	Action             string `json:"action"`
	TotalRequests      int64  `json:"total_requests"`
	SuccessfulRequests int64  `json:"successful_requests"`
	SuccessRate        string `json:"success_rate"`
}

// ErrorPattern is a recurring (error, status code) failure signature.
type ErrorPattern struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Count      int64  `json:"count"`
}

// SystemHealthMetrics summarizes request log outcomes over the period.
type SystemHealthMetrics struct {
	APIStats      []APIStat      `json:"api_stats"`
	ErrorPatterns []ErrorPattern `json:"error_patterns"`
	TotalRequests int64          `json:"total_requests"`
}

// LimitHitDay is a (user, date) pair that reached the daily message cap.
type LimitHitDay struct {
	UserID       string `json:"user_id"`
	Date         string `json:"date"`
	MessageCount int64  `json:"message_count"`
}

// RateLimitImpactMetrics measures how often users hit the daily free-tier
// message cap. TotalDaysWithLimitHits counts (user, date) rows, not
// distinct dates.
type RateLimitImpactMetrics struct {
	TotalDaysWithLimitHits     int64         `json:"total_days_with_limit_hits"`
	UniqueUsersAffected        int64         `json:"unique_users_affected"`
	AverageMessagesOnLimitDays string        `json:"average_messages_on_limit_days"`
	DailyLimitHits             []LimitHitDay `json:"daily_limit_hits"`
}
