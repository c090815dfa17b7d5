package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/alicebot/pkg/log"
)

const (
	eventReceivedBody = "EVENT_RECEIVED"
	verifyFailedBody  = "Verification failed"

	unknownMessageReply = "Sorry, I didn't understand that message."
	deliveryErrorReply  = "An error occurred while processing your request."
)

// webhookEnvelope is the page event payload Messenger posts to the webhook.
// Only the fields the relay consumes are mapped.
type webhookEnvelope struct {
	Object string `json:"object"`
	Entry  []struct {
		Messaging []messagingEvent `json:"messaging"`
	} `json:"entry"`
}

type messagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message *struct {
		Text        string `json:"text"`
		Attachments []struct {
			Type    string `json:"type"`
			Payload struct {
				URL string `json:"url"`
			} `json:"payload"`
		} `json:"attachments"`
	} `json:"message"`
}

// handleVerify answers the platform's subscription handshake: echo the
// challenge when the verify token matches, reject otherwise.
func (s *Server) handleVerify(c *gin.Context) {
	token := c.Query("hub.verify_token")
	if token == "" || token != s.cfg.VerifyToken {
		c.String(http.StatusForbidden, verifyFailedBody)
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// handleEvents ingests a batch of messaging events. The platform retries on
// anything but 200, so every recognized envelope is acknowledged regardless of
// how the individual events fared.
func (s *Server) handleEvents(c *gin.Context) {
	var envelope webhookEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}
	if envelope.Object != "page" {
		c.String(http.StatusNotFound, "unsupported object")
		return
	}

	ctx := c.Request.Context()
	for _, entry := range envelope.Entry {
		for _, event := range entry.Messaging {
			s.processEvent(ctx, event)
		}
	}

	c.String(http.StatusOK, eventReceivedBody)
}

func (s *Server) processEvent(ctx context.Context, event messagingEvent) {
	logger := log.FromCtx(ctx)
	if event.Message == nil || event.Sender.ID == "" {
		return
	}
	senderID := event.Sender.ID

	var reply string
	var err error
	switch {
	case event.Message.Text != "":
		reply, err = s.relay.HandleText(ctx, senderID, event.Message.Text)
	case len(event.Message.Attachments) > 0:
		att := event.Message.Attachments[0]
		reply, err = s.relay.HandleAttachment(ctx, senderID, att.Type, att.Payload.URL)
	default:
		reply = unknownMessageReply
	}

	if err != nil {
		logger.Error().Err(err).Str("sender", senderID).Msg("event processing failed")
		reply = deliveryErrorReply
	}

	if err := s.sender.SendMarkdown(ctx, senderID, reply); err != nil {
		logger.Error().Err(err).Str("sender", senderID).Msg("reply delivery failed")
	}
}
