package event

const OTPIssuedDestination string = "otp_issued"
const OTPIssuedConsumerDelivery string = "otp_issued_delivery"

type OTPIssuedMessage struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	Reason    string `json:"reason"`
}
