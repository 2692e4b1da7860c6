package core

// ConversationState tracks where a guest is in the Wi-Fi lookup flow. One exists per
// normalized phone number, created lazily on first contact.
type ConversationState struct {
	UserID string `json:"user_id"`

	// AwaitingApartment is set between the guest picking the Wi-Fi menu option and
	// supplying an apartment number.
	AwaitingApartment bool `json:"awaiting_apartment"`

	// IdleRepromptCount counts idle nudges sent since the last completed lookup flow.
	// At most one nudge is scheduled per fallback cycle.
	IdleRepromptCount int `json:"idle_reprompt_count"`
}

// UnitRecord is one active row of the unit directory. Only ApartmentID is guaranteed;
// every other field may be empty and is omitted from guest-facing output when blank.
type UnitRecord struct {
	ApartmentID  string `json:"apartment_id"`
	WifiNetwork  string `json:"wifi_network"`
	WifiPassword string `json:"wifi_password"`
	Beds         string `json:"beds"`
	Floor        string `json:"floor"`
	Capacity     string `json:"capacity"`
	Laundry      string `json:"laundry"`
}

// OutboundMessage is a reply on its way to a guest. Delivery is fire-and-forget.
type OutboundMessage struct {
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}
