package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/VineethSendilraj/COPilot/config"
	"github.com/golang-jwt/jwt/v5"
)

// ParticipantType selects the media-session role the token grants.
type ParticipantType string

const (
	// ParticipantDashboard is a read-only observer: subscribe, no publish.
	ParticipantDashboard ParticipantType = "dashboard"
	// ParticipantOfficer publishes its streams and may subscribe.
	ParticipantOfficer ParticipantType = "officer"
)

// DefaultRoomName is the room used when a request does not name one.
const DefaultRoomName = "officer-stream-room"

const tokenTTL = 6 * time.Hour

// ConnectionDetails is everything a client needs to join the media room.
type ConnectionDetails struct {
	ServerURL        string `json:"serverUrl"`
	RoomName         string `json:"roomName"`
	ParticipantToken string `json:"participantToken"`
	ParticipantName  string `json:"participantName"`
}

// videoGrant is the LiveKit-compatible permission claim embedded in the
// participant token.
type videoGrant struct {
	Room           string `json:"room"`
	RoomJoin       bool   `json:"roomJoin"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

type livekitClaims struct {
	jwt.RegisteredClaims
	Name  string     `json:"name"`
	Video videoGrant `json:"video"`
}

// LiveKitService issues scoped, time-limited media-room credentials. Each
// call is independent and stateless; callers may call repeatedly to rotate
// identity.
type LiveKitService struct {
	cfg config.Config
}

func NewLiveKitService(cfg config.Config) *LiveKitService {
	return &LiveKitService{cfg: cfg}
}

// GetConnectionDetails signs a participant token for the given room and
// role. Dashboard participants are subscribe-only observers; officer
// participants may publish media and data.
func (s *LiveKitService) GetConnectionDetails(roomName string, participantType ParticipantType) (*ConnectionDetails, error) {
	if roomName == "" {
		roomName = DefaultRoomName
	}
	if participantType == "" {
		participantType = ParticipantDashboard
	}

	participantName := "officer"
	if participantType == ParticipantDashboard {
		participantName = "dashboard-observer"
	}
	identity := fmt.Sprintf("%s_%d", participantType, rand.Intn(10000))

	grant := videoGrant{
		Room:           roomName,
		RoomJoin:       true,
		CanPublish:     participantType != ParticipantDashboard,
		CanSubscribe:   true,
		CanPublishData: participantType != ParticipantDashboard,
	}

	now := time.Now()
	claims := livekitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.LiveKitAPIKey,
			Subject:   identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Name:  participantName,
		Video: grant,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.LiveKitAPISecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign participant token: %w", err)
	}

	return &ConnectionDetails{
		ServerURL:        s.cfg.LiveKitURL,
		RoomName:         roomName,
		ParticipantToken: signed,
		ParticipantName:  participantName,
	}, nil
}
