package graph

import (
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// messagePage is one page of the /me/messages collection.
type messagePage struct {
	Value    []graphMessage `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

// graphMessage is the wire shape of a Graph mail message, projected to the
// fields requested via $select.
type graphMessage struct {
	ID               string     `json:"id"`
	Subject          string     `json:"subject"`
	BodyPreview      string     `json:"bodyPreview"`
	Body             *itemBody  `json:"body"`
	From             *recipient `json:"from"`
	ReceivedDateTime string     `json:"receivedDateTime"`
}

// itemBody holds a message body and its content type (Text or HTML).
type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// recipient wraps Graph's nested emailAddress object.
type recipient struct {
	EmailAddress *emailAddress `json:"emailAddress"`
}

// emailAddress is a sender or recipient address.
type emailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// userProfile is the subset of /me used for account identification.
type userProfile struct {
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
}

// toDomain converts a Graph message into the domain representation.
func (m graphMessage) toDomain() domain.Message {
	msg := domain.Message{
		ID:          m.ID,
		Subject:     m.Subject,
		BodyPreview: m.BodyPreview,
		Received:    m.ReceivedDateTime,
	}

	if m.Body != nil {
		msg.BodyHTML = m.Body.Content
	}

	if m.From != nil && m.From.EmailAddress != nil {
		msg.From = m.From.EmailAddress.Address
	}

	return msg
}
