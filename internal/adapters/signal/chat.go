package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// Inbound payload handlers. An invalid request is logged and dropped; the
// protocol never answers with an error frame, so the user-visible effect
// is simply that nothing happened.

func (ctl *ChatWSController) handleEnterRoom(sid domain.SessionID, data []byte) {
	type enterRoomPayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Room string `json:"room"`
	}
	var p enterRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad enterRoom payload")
		return
	}
	if err := domain.ValidateBinding(p.Name, domain.RoomName(p.Room)); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("enterRoom rejected")
		return
	}
	_ = ctl.Router.EnterRoom(sid, p.Name, domain.RoomName(p.Room))
}

func (ctl *ChatWSController) handleMessage(sid domain.SessionID, data []byte) {
	type messagePayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Text string `json:"text"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		return
	}
	ctl.Router.Message(sid, p.Name, p.Text)
}

func (ctl *ChatWSController) handleActivity(sid domain.SessionID, data []byte) {
	type activityPayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	var p activityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad activity payload")
		return
	}
	ctl.Router.Activity(sid, p.Name)
}
