package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/feedwire/feed-service/internal/core/ports"
	"github.com/feedwire/feed-service/internal/core/service"
)

// uploadField is the fixed multipart field name for the post image.
const uploadField = "image"

// FeedHandler handles HTTP requests for post operations. Image intake goes
// through the asset manager before the domain operation runs, so the service
// only ever sees stored asset paths.
type FeedHandler struct {
	feed   ports.FeedService
	assets *service.AssetManager
}

func NewFeedHandler(feed ports.FeedService, assets *service.AssetManager) *FeedHandler {
	return &FeedHandler{feed: feed, assets: assets}
}

// List handles GET /feed/posts?page=N.
//
// @Summary      List posts, newest first
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  ports.ListPostsResult
// @Failure      401   {object}  map[string]string
// @Router       /feed/posts [get]
func (h *FeedHandler) List(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	result, err := h.feed.ListPosts(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /feed/posts/:postId.
//
// @Summary      Get a single post
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  postResponse
// @Failure      404     {object}  map[string]string
// @Router       /feed/posts/{postId} [get]
func (h *FeedHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	post, err := h.feed.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Create handles POST /feed/posts (multipart).
//
// @Summary      Publish a post
// @Tags         feed
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title    formData  string  true   "Post title"
// @Param        content  formData  string  true   "Post content"
// @Param        image    formData  file    false  "Post image (png/jpg/jpeg)"
// @Success      201      {object}  createPostResponse
// @Failure      422      {object}  map[string]string
// @Router       /feed/posts [post]
func (h *FeedHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	upload, err := formUpload(c, uploadField)
	if err != nil {
		return err
	}
	imagePath, err := h.assets.Store(c.Request().Context(), upload)
	if err != nil {
		return err
	}

	post, err := h.feed.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		ImagePath: imagePath,
		UserID:    userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createPostResponse{
		Post:    post,
		Creator: post.Creator,
	})
}

// Update handles PUT /feed/posts/:postId (multipart). A new file supersedes
// the stored image; with no file the "image" form value is used, and when
// that is empty too the stored image is kept.
//
// @Summary      Edit a post
// @Tags         feed
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        postId   path      string  true   "Post id"
// @Param        title    formData  string  true   "Post title"
// @Param        content  formData  string  true   "Post content"
// @Param        image    formData  file    false  "Replacement image"
// @Success      200      {object}  postResponse
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /feed/posts/{postId} [put]
func (h *FeedHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	imagePath := c.FormValue(uploadField)
	upload, err := formUpload(c, uploadField)
	if err != nil {
		return err
	}
	if upload != nil {
		imagePath, err = h.assets.Store(c.Request().Context(), upload)
		if err != nil {
			return err
		}
	}

	post, err := h.feed.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		PostID:    c.Param("postId"),
		UserID:    userID,
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		ImagePath: imagePath,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Delete handles DELETE /feed/posts/:postId.
//
// @Summary      Delete a post
// @Tags         feed
// @Security     BearerAuth
// @Param        postId  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /feed/posts/{postId} [delete]
func (h *FeedHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.feed.DeletePost(c.Request().Context(), c.Param("postId"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
