package models

// ConversationMessage is one row of the daily chat history log.
type ConversationMessage struct {
	ID       int64   `json:"id"`
	Date     string  `json:"fecha"`
	UserID   *string `json:"idusuario"`
	UserName *string `json:"nombreusuario"`
	Message  *string `json:"historial_conversacion"`
}

// Day returns the YYYY-MM-DD prefix of Date.
func (m *ConversationMessage) Day() string {
	if len(m.Date) >= 10 {
		return m.Date[:10]
	}
	return m.Date
}
