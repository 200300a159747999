package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"accountd/internal/server/avatars"
	"accountd/internal/server/profiles"
	"accountd/internal/shared"
)

type profilePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPayload(v *profiles.View) profilePayload {
	return profilePayload{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Avatar:    v.AvatarURL,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (s *Server) getOwnProfile(c *gin.Context) {
	v, err := s.profiles.GetOwn(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(v))
}

func (s *Server) updateOwnProfile(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	s.applyProfileUpdate(c,
		func(name string) (*profiles.View, error) {
			return s.profiles.RenameOwn(c.Request.Context(), userID, name)
		},
		func(contentType string, data []byte) (*profiles.View, error) {
			return s.profiles.UploadOwnAvatar(c.Request.Context(), userID, contentType, data)
		},
		func() (*profiles.View, error) {
			return s.profiles.GetOwn(c.Request.Context(), userID)
		},
	)
}

func (s *Server) deleteOwnProfile(c *gin.Context) {
	// deleting the profile deletes the account
	if err := s.profiles.DeleteOwn(c.Request.Context(), c.GetString(ctxUserID)); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listProfiles(c *gin.Context) {
	views, err := s.profiles.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	payload := make([]profilePayload, 0, len(views))
	for _, v := range views {
		payload = append(payload, toPayload(v))
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) getProfile(c *gin.Context) {
	v, err := s.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(v))
}

func (s *Server) updateProfile(c *gin.Context) {
	profileID := c.Param("id")
	s.applyProfileUpdate(c,
		func(name string) (*profiles.View, error) {
			return s.profiles.Rename(c.Request.Context(), profileID, name)
		},
		func(contentType string, data []byte) (*profiles.View, error) {
			return s.profiles.UploadAvatar(c.Request.Context(), profileID, contentType, data)
		},
		func() (*profiles.View, error) {
			return s.profiles.Get(c.Request.Context(), profileID)
		},
	)
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type profileUpdateInput struct {
	Name *string `json:"name"`
}

// applyProfileUpdate handles both body shapes an update may arrive in:
// multipart form data carrying a name field and/or an avatar file, or a JSON
// object with a name. A submitted email is ignored either way; the field is
// a read-only mirror of the account email.
func (s *Server) applyProfileUpdate(c *gin.Context,
	rename func(name string) (*profiles.View, error),
	upload func(contentType string, data []byte) (*profiles.View, error),
	current func() (*profiles.View, error),
) {
	var view *profiles.View
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		// the whole payload is validated before anything is written, so a
		// rejected avatar never commits a name change sent alongside it
		var avatarType string
		var avatarData []byte

		file, header, fileErr := c.Request.FormFile("avatar")
		if fileErr == nil {
			defer file.Close()

			data, readErr := io.ReadAll(io.LimitReader(file, avatars.MaxSize+1))
			if readErr != nil {
				s.writeError(c, shared.ErrorInternal)
				return
			}
			if len(data) > avatars.MaxSize {
				s.writeError(c, shared.ErrorAvatarTooLarge)
				return
			}
			avatarType = header.Header.Get("Content-Type")
			avatarData = data
		}

		if name, ok := c.GetPostForm("name"); ok {
			if view, err = rename(name); err != nil {
				s.writeError(c, err)
				return
			}
		}
		if avatarData != nil {
			if view, err = upload(avatarType, avatarData); err != nil {
				s.writeError(c, err)
				return
			}
		}
	} else {
		var input profileUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name != nil {
			if view, err = rename(*input.Name); err != nil {
				s.writeError(c, err)
				return
			}
		}
	}

	if view == nil {
		// nothing recognizable in the body; respond with the current state
		if view, err = current(); err != nil {
			s.writeError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, toPayload(view))
}
