package dto

// PaymentStatus narrows the status filter options.
type PaymentStatus string

const (
	StatusAll     PaymentStatus = "all"
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
	StatusFailed  PaymentStatus = "failed"
)

// PaymentChannel narrows the channel filter options.
type PaymentChannel string

const (
	ChannelAll          PaymentChannel = "all"
	ChannelCard         PaymentChannel = "card"
	ChannelPromptPay    PaymentChannel = "promptpay"
	ChannelBankTransfer PaymentChannel = "bank_transfer"
	ChannelOther        PaymentChannel = "other"
)

// KnownChannels is the explicit channel whitelist. Records whose channel is
// outside of it, including missing channels, bucket under "other"; channels
// added upstream deliberately land there until this enum is extended.
var KnownChannels = map[string]struct{}{
	string(ChannelCard):         {},
	string(ChannelPromptPay):    {},
	string(ChannelBankTransfer): {},
}

// TimePreset names a shortcut that sets both date bounds atomically.
type TimePreset string

const (
	PresetAll     TimePreset = "all"
	PresetToday   TimePreset = "today"
	PresetWeek    TimePreset = "7d"
	PresetMonth30 TimePreset = "30d"
	PresetMonth   TimePreset = "month"
)

// PaymentFilter is an immutable filter-criteria snapshot. Dates are
// YYYY-MM-DD, both bounds inclusive.
type PaymentFilter struct {
	Query     string         `json:"query"`
	Status    PaymentStatus  `json:"status"`
	Channel   PaymentChannel `json:"channel"`
	StartDate string         `json:"startDate,omitempty"`
	EndDate   string         `json:"endDate,omitempty"`
	Preset    TimePreset     `json:"preset"`
}

// DefaultPaymentFilter matches everything.
func DefaultPaymentFilter() PaymentFilter {
	return PaymentFilter{
		Query:   "",
		Status:  StatusAll,
		Channel: ChannelAll,
		Preset:  PresetAll,
	}
}

// PaymentFilterUpdate stages draft edits; nil fields stay untouched.
type PaymentFilterUpdate struct {
	Query     *string         `json:"query"`
	Status    *PaymentStatus  `json:"status" validate:"omitempty,oneof=all paid pending failed"`
	Channel   *PaymentChannel `json:"channel" validate:"omitempty,oneof=all card promptpay bank_transfer other"`
	StartDate *string         `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string         `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Preset    *TimePreset     `json:"preset" validate:"omitempty,oneof=all today 7d 30d month"`
}

// PaymentRow is a display-ready transaction record.
type PaymentRow struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	ChargeID       string  `json:"charge_id"`
	AmountTHB      float64 `json:"amount_thb"`
	Currency       string  `json:"currency"`
	Channel        string  `json:"channel"`
	Status         string  `json:"status"`
	FailureCode    string  `json:"failure_code"`
	FailureMessage string  `json:"failure_message"`
	CreatedAt      string  `json:"created_at"`
}

// PaymentListResponse is one page of the filtered table plus the applied
// criteria it was produced under.
type PaymentListResponse struct {
	Items  []PaymentRow  `json:"items"`
	Filter PaymentFilter `json:"filter"`
}

// FilterSessionResponse exposes the draft/applied filter state.
type FilterSessionResponse struct {
	Draft   PaymentFilter `json:"draft"`
	Applied PaymentFilter `json:"applied"`
	Page    int           `json:"page"`
}
