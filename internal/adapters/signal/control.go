package signal

import "github.com/JasonCastel/ChatIRC/internal/domain"

func (ctl *ChatWSController) handlePing(sid domain.SessionID) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.ToCaller(sid, resp)
}
