package request

type SignupParticipant struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Consent bool   `json:"consent" validate:"eq=true"`
	BusID   string `json:"bus_id" validate:"required,uuid"`
	Member  bool   `json:"member"`
	Youth   bool   `json:"youth"`
}

type SignupRequest struct {
	EventID      string              `json:"event_id" validate:"required,uuid"`
	Participants []SignupParticipant `json:"participants" validate:"required,min=1,dive"`
}
