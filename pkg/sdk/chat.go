package yojana

import (
	"context"
	"time"
)

// ChatService talks to the scheme assistant.
type ChatService struct {
	svc chatUseCase
	obs *observer
}

// Ask answers one message. Remote responder failures fall back to the
// canned help reply, so Ask always returns a reply.
func (s *ChatService) Ask(ctx context.Context, message string) ChatReply {
	start := time.Now()
	defer func() { s.obs.observe("chat.ask", start, nil) }()

	r := s.svc.Respond(ctx, message)
	return ChatReply{
		Text:    r.Text,
		Rule:    r.Rule,
		Schemes: fromInternalSchemes(r.Schemes),
		Link:    r.Link,
	}
}
