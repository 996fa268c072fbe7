package post

import (
	"errors"
	"net/http"
	"time"

	"github.com/avencillado/blognest/internal/auth"
	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	Likes     int       `json:"likes"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		Likes:     p.Likes,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func newPostListResponse(posts []Post) []PostResponse {
	res := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, newPostResponse(p))
	}
	return res
}

type CreatePostRequest struct {
	Title   string  `json:"title,omitempty" validate:"required,max=200"`
	Content string  `json:"content,omitempty" validate:"required"`
	Image   *string `json:"image,omitempty" validate:"omitempty,url"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreatePostRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	p, err := h.svc.CreatePost(r.Context(), CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		AuthorID: authorID,
	})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgPostCreated
	data := newPostResponse(p)
	web.RespondCreated(w, &msg, &data)
}

type UpdatePostRequest struct {
	Title   string  `json:"title,omitempty" validate:"required,max=200"`
	Content string  `json:"content,omitempty" validate:"required"`
	Image   *string `json:"image,omitempty" validate:"omitempty,url"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	authorID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[UpdatePostRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	p, err := h.svc.UpdatePost(r.Context(), UpdatePostParams{
		PostID:   r.PathValue("id"),
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, MsgPostNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgPostUpdated
	data := newPostResponse(p)
	web.RespondOK(w, &msg, &data)
}

// ListOwn returns the authenticated author's posts.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	authorID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	posts, err := h.svc.ListByAuthor(r.Context(), authorID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := newPostListResponse(posts)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListAll(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := newPostListResponse(posts)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	if err := h.svc.DeletePost(r.Context(), r.PathValue("id"), authorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, MsgPostNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgPostDeleted
	web.RespondOK(w, &msg, &struct{}{})
}
