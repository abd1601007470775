package api

import (
	"errors"
	"log/slog"
	"net/http"

	"imagefolio/internal/auth"
	"imagefolio/internal/models"
	"imagefolio/internal/upload"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return &StatusError{Status: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed)}
	}

	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		return &StatusError{Status: http.StatusBadRequest, Message: "Invalid request body.", Err: err}
	}

	_, err := s.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		return &StatusError{Status: http.StatusBadRequest, Message: "Email is already registered", Err: err}
	case errors.Is(err, auth.ErrMissingFields):
		return &StatusError{Status: http.StatusBadRequest, Message: "Username, email and password are required.", Err: err}
	case err != nil:
		return &StatusError{Status: http.StatusInternalServerError, Message: "Error occurred while registering user.", Err: err}
	}

	return writeJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully. Please login."})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return &StatusError{Status: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed)}
	}

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return &StatusError{Status: http.StatusBadRequest, Message: "Invalid request body.", Err: err}
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &StatusError{Status: http.StatusBadRequest, Message: "Invalid credentials.", Err: err}
	case err != nil:
		return &StatusError{Status: http.StatusInternalServerError, Message: "Error occurred while logging in.", Err: err}
	}

	return writeJSON(w, http.StatusOK, LoginResponse{Token: token, Message: "Login successful."})
}

func (s *Server) handleUpload(userID string, w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return &StatusError{Status: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed)}
	}

	// Bound the whole request body; the slack covers multipart framing. The
	// pipeline enforces the exact file cap during receipt.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize+(1<<20))

	formFile, handler, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &StatusError{Status: http.StatusRequestEntityTooLarge, Message: "File is too large.", Err: err}
		}
		return &StatusError{Status: http.StatusBadRequest, Message: "No file uploaded.", Err: err}
	}
	defer formFile.Close()

	slog.Debug("Received a file",
		"filename", handler.Filename,
		"size", handler.Size,
		"content_type", handler.Header.Get("Content-Type"),
		"user_id", userID,
	)

	ref, err := s.pipeline.Process(r.Context(), formFile, handler.Header.Get("Content-Type"), handler.Size)
	switch {
	case errors.Is(err, upload.ErrUnsupportedMediaType):
		return &StatusError{Status: http.StatusBadRequest, Message: "Unsupported file type.", Err: err}
	case errors.Is(err, upload.ErrPayloadTooLarge):
		return &StatusError{Status: http.StatusRequestEntityTooLarge, Message: "File is too large.", Err: err}
	case err != nil:
		return &StatusError{Status: http.StatusInternalServerError, Message: "File upload failed.", Err: err}
	}

	slog.Info("Uploaded an image", "public_id", ref.PublicID, "user_id", userID)

	http.Redirect(w, r, "/portfolio", http.StatusSeeOther)
	return nil
}

func (s *Server) handleFetchImages(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return &StatusError{Status: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed)}
	}

	images, err := s.images.ListImages(r.Context())
	if err != nil {
		return &StatusError{Status: http.StatusInternalServerError, Message: "Error fetching images from the database.", Err: err}
	}
	if images == nil {
		images = []models.ImageReference{}
	}

	return writeJSON(w, http.StatusOK, images)
}
