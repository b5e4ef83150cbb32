package lsp

// CommandCustomNotification is the only command the server executes.
const CommandCustomNotification = "custom.notification"

// MethodCustomNotification is the method of the server-to-client
// notification emitted by CommandCustomNotification.
const MethodCustomNotification = "custom/notification"

// CustomNotificationParams is the payload of MethodCustomNotification.
type CustomNotificationParams struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewCustomNotification builds a notification payload.
func NewCustomNotification(title, message string) CustomNotificationParams {
	return CustomNotificationParams{Title: title, Message: message}
}
