package assistantService

import (
	"context"
	"time"

	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/pkg/oracle"
	redisPkg "PawPalGolang/pkg/redis"
	"PawPalGolang/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	CreateSession(ctx context.Context) (*assistant.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error)
	CloseSession(ctx context.Context, sessionID string) error

	SendMessage(ctx context.Context, sessionID string, text string) (*assistant.SessionResponse, error)
	SelectQuestion(ctx context.Context, sessionID string, question string) (*assistant.SessionResponse, error)

	NavigateBack(ctx context.Context, sessionID string) (*assistant.BackResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error)
}

const (
	seedGreeting = "Hi! I'm PawPal, the Paw Hotel assistant. Pick a question below or ask me anything about your pet's stay."

	contactInfoText = "Our reception is open daily from 08:00 to 20:00. For urgent matters call +1 (555) 010-7529, or message us on WhatsApp: https://wa.me/15550107529."

	apologyText = "Sorry, something went wrong while looking that up. Please try again in a moment."

	followUpPrompt = "You might also want to ask:"

	browseOfferText = "Would you like to browse more FAQs?"

	answerCacheTTL = 6 * time.Hour
)

type assistantService struct {
	log           *logrus.Logger
	store         *sessionStore
	oracle        oracle.IOracle
	answerCache   redisPkg.IRedis
	utils         utils.IUtils
	followUpDelay time.Duration
}

func NewAssistantService(
	log *logrus.Logger,
	oracleClient oracle.IOracle,
	answerCache redisPkg.IRedis,
	utils utils.IUtils,
	followUpDelay time.Duration,
) IAssistantService {
	return &assistantService{
		log:           log,
		store:         newSessionStore(),
		oracle:        oracleClient,
		answerCache:   answerCache,
		utils:         utils,
		followUpDelay: followUpDelay,
	}
}
