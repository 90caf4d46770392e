package rtc

import (
	"encoding/json"

	"github.com/dkeye/Live/internal/config"
	"github.com/pion/webrtc/v4"
)

const defaultSTUN = "stun:stun.l.google.com:19302"

// ICEConfiguration is what browsers need to build their peer connections.
// The relay never terminates media itself.
func ICEConfiguration(servers []config.ICEServer) webrtc.Configuration {
	out := webrtc.Configuration{}
	for _, s := range servers {
		if len(s.URLs) == 0 {
			continue
		}
		srv := webrtc.ICEServer{URLs: append([]string(nil), s.URLs...)}
		if s.Username != "" {
			srv.Username = s.Username
			srv.Credential = s.Credential
		}
		out.ICEServers = append(out.ICEServers, srv)
	}
	if len(out.ICEServers) == 0 {
		out.ICEServers = []webrtc.ICEServer{{URLs: []string{defaultSTUN}}}
	}
	return out
}

type probe struct {
	Type        string                   `json:"type"`
	SDP         string                   `json:"sdp"`
	Candidate   *webrtc.ICECandidateInit `json:"candidate"`
	Renegotiate bool                     `json:"renegotiate"`
}

// Describe names the kind of an opaque signal payload for logging.
// It accepts both {type,sdp} descriptions and {candidate:{...}} wrappers.
func Describe(payload json.RawMessage) string {
	var p probe
	if len(payload) == 0 || json.Unmarshal(payload, &p) != nil {
		return "unknown"
	}
	if p.Type != "" {
		switch t := webrtc.NewSDPType(p.Type); t {
		case webrtc.SDPTypeOffer, webrtc.SDPTypeAnswer, webrtc.SDPTypePranswer, webrtc.SDPTypeRollback:
			return t.String()
		}
		if p.Type == "candidate" {
			return "candidate"
		}
	}
	switch {
	case p.Candidate != nil:
		return "candidate"
	case p.Renegotiate:
		return "renegotiate"
	}
	return "unknown"
}
