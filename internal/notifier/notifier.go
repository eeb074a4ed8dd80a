package notifier

// Live sends through the real SMS and email gateways.
type Live struct{}

func (Live) SendSMS(toPhoneNumber string, orderID uint, totalAmount float64) error {
	return SendSMS(toPhoneNumber, orderID, totalAmount)
}

func (Live) SendEmail(recipientEmail string, customerName string, orderID uint, totalAmount float64) error {
	return SendEmail(recipientEmail, customerName, orderID, totalAmount)
}
