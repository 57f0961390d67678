package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
	"github.com/AnshRaj112/vidtube-backend/internal/middleware"
	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/internal/services"
	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/AnshRaj112/vidtube-backend/pkg/clientip"
	"github.com/AnshRaj112/vidtube-backend/pkg/response"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UserHandler serves /users.
type UserHandler struct {
	sessions *services.SessionManager
	profiles *services.ProfileService
	channels *services.ChannelService
	uploads  uploadStager
}

func NewUserHandler(cfg *config.Config, sessions *services.SessionManager, profiles *services.ProfileService, channels *services.ChannelService) *UserHandler {
	return &UserHandler{
		sessions: sessions,
		profiles: profiles,
		channels: channels,
		uploads:  uploadStager{dir: cfg.UploadDir, maxBytes: cfg.MaxUploadBytes},
	}
}

// Register accepts multipart form fields plus avatar and coverImage files.
// A JSON body is accepted too, but can never carry the required avatar.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	in := services.RegisterInput{}

	multipart, err := h.uploads.parse(w, r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if multipart {
		req = registerRequest{
			FullName: r.FormValue("fullName"),
			Email:    r.FormValue("email"),
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		defer r.MultipartForm.RemoveAll()

		if in.AvatarPath, err = h.uploads.stage(r, "avatar"); err != nil {
			response.Error(w, r, err)
			return
		}
		defer removeStaged(in.AvatarPath)
		if in.CoverImagePath, err = h.uploads.stage(r, "coverImage"); err != nil {
			response.Error(w, r, err)
			return
		}
		defer removeStaged(in.CoverImagePath)
	} else if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	in.FullName, in.Email, in.Username, in.Password = req.FullName, req.Email, req.Username, req.Password
	user, err := h.sessions.Register(r.Context(), in)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, user, "User registered Successfully")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.sessions.Login(r.Context(), req)
	if err != nil {
		if apierror.StatusOf(err) == http.StatusUnauthorized {
			log.Printf("Failed login for %q from %s", req.Username+req.Email, clientip.RealClientIP(r))
		}
		response.Error(w, r, err)
		return
	}

	setAuthCookies(w, result.TokenPair)
	response.JSON(w, http.StatusOK, result, "User logged In Successfully")
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.sessions.Logout(r.Context(), user.ID); err != nil {
		response.Error(w, r, err)
		return
	}
	clearAuthCookies(w)
	response.JSON(w, http.StatusOK, response.Empty(), "User logged Out")
}

// RefreshToken takes the refresh token from its cookie or the JSON body.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.sessions.Refresh(r.Context(), token)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	setAuthCookies(w, *pair)
	response.JSON(w, http.StatusOK, pair, "Access token refreshed")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.sessions.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Empty(), "Password changed successfully")
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	current, err := h.sessions.CurrentUser(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, current, "User fetched successfully")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	updated, err := h.profiles.UpdateAccountDetails(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, updated, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "avatar", h.profiles.UpdateAvatar, "Avatar image updated successfully")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "coverImage", h.profiles.UpdateCoverImage, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error)

func (h *UserHandler) replaceImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdater, message string) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var path string
	multipart, err := h.uploads.parse(w, r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if multipart {
		defer r.MultipartForm.RemoveAll()
		if path, err = h.uploads.stage(r, field); err != nil {
			response.Error(w, r, err)
			return
		}
		defer removeStaged(path)
	}

	updated, err := update(r.Context(), user.ID, path)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, updated, message)
}

// ChannelProfile is public; a signed-in viewer also learns whether they
// subscribe to the channel.
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	var viewer *primitive.ObjectID
	if user, ok := middleware.CurrentUser(r.Context()); ok {
		viewer = &user.ID
	}

	profile, err := h.channels.GetChannelProfile(r.Context(), chi.URLParam(r, "username"), viewer)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	videos, err := h.channels.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, videos, "Watch history fetched successfully")
}

func requireUser(r *http.Request) (*models.User, error) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return nil, apierror.Auth("Unauthorized request")
	}
	return user, nil
}

// decodeJSON decodes the body into v. An empty body leaves v untouched so
// the service reports which fields are missing.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apierror.Validation("Invalid request body")
	}
	return nil
}
