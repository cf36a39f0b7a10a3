package facade

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/EquiStack/barn_client/internal/app/domain/chat"
	"github.com/EquiStack/barn_client/internal/envelope"
)

const chatPath = "/ai/chat"

// SendChat submits a conversation to the assistant. horseID optionally
// scopes the reply to a horse's records.
func (a *API) SendChat(ctx context.Context, messages []chat.Message, horseID string) envelope.Envelope[chat.Reply] {
	if len(messages) == 0 {
		return envelope.Fail[chat.Reply]("at least one message is required")
	}
	body, err := json.Marshal(chat.Request{Messages: messages, HorseID: horseID})
	if err != nil {
		return envelope.Fail[chat.Reply]("encode request: " + err.Error())
	}
	return envelope.As[chat.Reply](a.gw.Do(ctx, http.MethodPost, chatPath, nil, body))
}
