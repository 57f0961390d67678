package handlers

import (
	"net/http"

	"github.com/AnshRaj112/vidtube-backend/internal/services"
	"github.com/AnshRaj112/vidtube-backend/pkg/response"
	"github.com/go-chi/chi/v5"
)

// SubscriptionHandler serves /subscriptions.
type SubscriptionHandler struct {
	channels *services.ChannelService
}

func NewSubscriptionHandler(channels *services.ChannelService) *SubscriptionHandler {
	return &SubscriptionHandler{channels: channels}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	subscribed, err := h.channels.ToggleSubscription(r.Context(), user.ID, chi.URLParam(r, "channelId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	response.JSON(w, http.StatusOK, map[string]bool{"subscribed": subscribed}, message)
}
