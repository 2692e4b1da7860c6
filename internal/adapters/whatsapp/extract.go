package whatsapp

import "strings"

// ExtractMessage pulls the sender id and user-visible text out of a webhook delivery.
// The first inbound message that carries text wins; the preference order within a
// message is plain text body, then button-reply title, then list-reply title. Text is
// trimmed of surrounding whitespace.
//
// Status callbacks and unsupported message types yield ("", ""), which callers treat
// as "nothing to do" rather than an error.
func ExtractMessage(payload *WebhookPayload) (sender, text string) {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "" && change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				var body string
				switch {
				case msg.Text.Body != "":
					body = msg.Text.Body
				case msg.Interactive.ButtonReply.Title != "":
					body = msg.Interactive.ButtonReply.Title
				case msg.Interactive.ListReply.Title != "":
					body = msg.Interactive.ListReply.Title
				default:
					continue
				}
				return msg.From, strings.TrimSpace(body)
			}
		}
	}
	return "", ""
}
