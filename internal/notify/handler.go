package notify

import (
	"net/http"

	"pizzeria-be/internal/logger"
	"pizzeria-be/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already gates on the access token; browser origin checks
	// would break the deployed frontends.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an authenticated request into a push session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		userID: userID,
		admin:  utils.IsAdmin(r.Context()),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	h.register(c)

	logger.FromCtx(r.Context()).Info("websocket client connected",
		zap.String("user_id", userID),
		zap.Bool("admin", c.admin),
	)

	go h.writePump(c)
	go h.readPump(c)
}
