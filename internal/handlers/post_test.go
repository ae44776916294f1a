package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/dto"
	"github.com/hanamizu/collab-api/internal/services"
	"github.com/stretchr/testify/require"
)

func TestPostHandler_CreatePost(t *testing.T) {
	env := setupTestEnv(t)

	user := createTestUser(t, env, "author")

	body := marshalBody(t, map[string]any{
		"content": "hello world",
		"options": map[string]string{"background_color": "#ffcc00"},
	})
	c, w := testContext(http.MethodPost, "/posts", body, user.ID)

	env.postHandler.CreatePost(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Post dto.PostDTO `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "author", response.Post.Author)
	require.Equal(t, "hello world", response.Post.Content)
	require.NotNil(t, response.Post.Options)
	require.Equal(t, "#ffcc00", response.Post.Options.BackgroundColor)
}

func TestPostHandler_UpdatePost(t *testing.T) {
	env := setupTestEnv(t)

	author := createTestUser(t, env, "author")
	other := createTestUser(t, env, "other")

	post, err := env.postService.Create(services.CreatePostInput{
		AuthorID: author.ID,
		Content:  "original",
	})
	require.NoError(t, err)

	// Someone else's edit is rejected.
	body := marshalBody(t, map[string]string{"content": "hijacked"})
	c, w := testContext(http.MethodPatch, "/posts/1", body, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.postHandler.UpdatePost(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The author's edit goes through.
	body = marshalBody(t, map[string]string{"content": "edited"})
	c, w = testContext(http.MethodPatch, "/posts/1", body, author.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.postHandler.UpdatePost(c)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := env.postService.Get(post.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)
}

func TestPostHandler_DeletePost(t *testing.T) {
	env := setupTestEnv(t)

	author := createTestUser(t, env, "author")

	post, err := env.postService.Create(services.CreatePostInput{
		AuthorID: author.ID,
		Content:  "ephemeral",
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodDelete, "/posts/1", nil, author.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.postHandler.DeletePost(c)
	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.postService.Get(post.ID)
	require.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestPostHandler_ListPostsByAuthor(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	for _, p := range []struct {
		author  uint64
		content string
	}{
		{alice.ID, "from alice"},
		{bob.ID, "from bob"},
		{alice.ID, "also from alice"},
	} {
		_, err := env.postService.Create(services.CreatePostInput{
			AuthorID: p.author,
			Content:  p.content,
		})
		require.NoError(t, err)
	}

	c, w := testContext(http.MethodGet, "/posts?author=alice", nil, bob.ID)

	env.postHandler.ListPosts(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []dto.PostDTO `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Posts, 2)
	for _, post := range response.Posts {
		require.Equal(t, "alice", post.Author)
	}
}

func TestPostHandler_ListPostsDeletedAuthor(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	_, err := env.postService.Create(services.CreatePostInput{
		AuthorID: alice.ID,
		Content:  "orphaned",
	})
	require.NoError(t, err)

	require.NoError(t, env.authService.DeleteUser(alice.ID))

	c, w := testContext(http.MethodGet, "/posts", nil, bob.ID)

	env.postHandler.ListPosts(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []dto.PostDTO `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Posts, 1)
	require.Equal(t, "DELETED_USER", response.Posts[0].Author)
}
