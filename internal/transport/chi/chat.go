package chi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	logpkg "github.com/yojanadost/yojana/internal/logger"
)

// Chat handles POST /api/v1/chat. The agent always answers; failures of a remote
// responder surface as an apology text, not as an error status.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply := s.agent.Respond(r.Context(), req.Message)
	logpkg.AddEventFields(r.Context(),
		zap.String("chat_rule", reply.Rule),
		zap.Int("chat_schemes", len(reply.Schemes)),
	)
	writeJSON(w, http.StatusOK, replyToResponse(reply))
}
