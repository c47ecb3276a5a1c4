package mailservice

// Message письмо-приглашение, отправляемое через почтовый релей
// ICS вложение передается инлайн текстом, релей сам собирает MIME
type Message struct {
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName,omitempty"`
	ToEmail   string `json:"toEmail"`
	ToName    string `json:"toName,omitempty"`
	Subject   string `json:"subject"`
	TextBody  string `json:"textBody"`
	ICS       string `json:"ics,omitempty"`
}

// ErrorResponse модель ошибки от релея
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
