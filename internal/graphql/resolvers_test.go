package graphql

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/ports"
	"github.com/feedwire/feed-service/internal/core/service"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	r.nextID++
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) AddPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (r *stubUserRepo) RemovePost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Posts[:0]
	for _, id := range u.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.Posts = kept
	return nil
}

type stubPostRepo struct {
	posts  []domain.Post
	nextID int
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	clone := *post
	r.nextID++
	clone.ID = fmt.Sprintf("post_%d", r.nextID)
	r.posts = append([]domain.Post{clone}, r.posts...)
	result := clone
	return &result, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	for i := range r.posts {
		if r.posts[i].ID == id {
			clone := r.posts[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) List(_ context.Context, page, pageSize int) ([]domain.Post, int64, error) {
	total := int64(len(r.posts))
	start := (page - 1) * pageSize
	if start >= len(r.posts) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(r.posts) {
		end = len(r.posts)
	}
	return append([]domain.Post(nil), r.posts[start:end]...), total, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) error {
	for i := range r.posts {
		if r.posts[i].ID == post.ID {
			r.posts[i] = *post
			return nil
		}
	}
	return domain.ErrPostNotFound
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return domain.ErrPostNotFound
}

type nopBlobStore struct{ removed []string }

func (s *nopBlobStore) Put(context.Context, string, ports.Upload) error { return nil }
func (s *nopBlobStore) Remove(_ context.Context, name string) error {
	s.removed = append(s.removed, name)
	return nil
}

type schemaFixture struct {
	schema  graphql.Schema
	users   *stubUserRepo
	posts   *stubPostRepo
	store   *nopBlobStore
	feed    ports.FeedService
	ownerID string
}

func newSchemaFixture(t *testing.T) *schemaFixture {
	t.Helper()

	users := newStubUserRepo()
	posts := &stubPostRepo{}
	store := &nopBlobStore{}

	creds := service.NewCredentials("secret", time.Hour)
	auth := service.NewAuthService(users, creds, zerolog.Nop())
	assets := service.NewAssetManager(store, zerolog.Nop())
	feed := service.NewFeedService(posts, users, assets, nil, nil, zerolog.Nop())

	owner, err := users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", Status: domain.DefaultStatus,
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	schema, err := NewSchema(NewResolvers(auth, feed))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	return &schemaFixture{
		schema:  schema,
		users:   users,
		posts:   posts,
		store:   store,
		feed:    feed,
		ownerID: owner.ID,
	}
}

func (f *schemaFixture) exec(query string, identity service.Identity) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        f.schema,
		RequestString: query,
		Context:       WithIdentity(context.Background(), identity),
	})
}

func (f *schemaFixture) authed() service.Identity {
	return service.Identity{State: service.IdentityAuthenticated, UserID: f.ownerID}
}

func firstErrorStatus(t *testing.T, result *graphql.Result) int {
	t.Helper()
	if len(result.Errors) == 0 {
		t.Fatalf("expected errors, got data %v", result.Data)
	}
	orig := originalOf(result.Errors[0])
	if orig == nil {
		t.Fatalf("expected resolver error, got %v", result.Errors[0])
	}
	return classify(orig)
}

func dataField(t *testing.T, result *graphql.Result, name string) map[string]interface{} {
	t.Helper()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %v", result.Data)
	}
	field, ok := data[name].(map[string]interface{})
	if !ok {
		t.Fatalf("missing %q in data: %v", name, data)
	}
	return field
}

func TestSchema_CreateUser(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.exec(`mutation {
		createUser(userInput: {name: "Bob", email: "bob@example.com", password: "tester1"}) {
			_id name email status
		}
	}`, service.Identity{})

	user := dataField(t, result, "createUser")
	if user["name"] != "Bob" || user["email"] != "bob@example.com" {
		t.Fatalf("unexpected user: %v", user)
	}
	if user["status"] != domain.DefaultStatus {
		t.Fatalf("unexpected status: %v", user["status"])
	}
	if user["_id"] == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestSchema_CreateUser_ValidationStatus(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.exec(`mutation {
		createUser(userInput: {name: "B", email: "not-an-email", password: "x"}) { _id }
	}`, service.Identity{})

	if status := firstErrorStatus(t, result); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
}

func TestSchema_Login(t *testing.T) {
	f := newSchemaFixture(t)

	create := f.exec(`mutation {
		createUser(userInput: {name: "Bob", email: "bob@example.com", password: "tester1"}) { _id }
	}`, service.Identity{})
	if len(create.Errors) != 0 {
		t.Fatalf("createUser failed: %v", create.Errors)
	}

	result := f.exec(`{ login(email: "bob@example.com", password: "tester1") { token userId } }`, service.Identity{})
	auth := dataField(t, result, "login")
	if auth["token"] == "" || auth["userId"] == "" {
		t.Fatalf("unexpected auth data: %v", auth)
	}

	bad := f.exec(`{ login(email: "bob@example.com", password: "wrong1") { token userId } }`, service.Identity{})
	if status := firstErrorStatus(t, bad); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}
}

func TestSchema_PostsRequireAuth(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.exec(`{ posts { totalItems } }`, service.Identity{})
	if status := firstErrorStatus(t, result); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous posts query, got %d", status)
	}

	// An invalid credential is also not an identity.
	result = f.exec(`{ posts { totalItems } }`, service.Identity{State: service.IdentityInvalid})
	if status := firstErrorStatus(t, result); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid identity, got %d", status)
	}
}

func TestSchema_CreatePost(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.exec(`mutation {
		createPost(postInput: {title: "Hello feed", content: "first!"}) {
			_id title imageUrl creator { _id name }
		}
	}`, f.authed())

	post := dataField(t, result, "createPost")
	if post["title"] != "Hello feed" {
		t.Fatalf("unexpected post: %v", post)
	}
	if post["imageUrl"] != service.PlaceholderImage {
		t.Fatalf("expected placeholder image, got %v", post["imageUrl"])
	}
	creator, _ := post["creator"].(map[string]interface{})
	if creator["_id"] != f.ownerID || creator["name"] != "Alice" {
		t.Fatalf("unexpected creator: %v", creator)
	}
}

func TestSchema_PostsPage(t *testing.T) {
	f := newSchemaFixture(t)
	for i := 1; i <= 3; i++ {
		_, err := f.feed.CreatePost(context.Background(), ports.CreatePostInput{
			Title: fmt.Sprintf("Post number %d", i), Content: "body", UserID: f.ownerID,
		})
		if err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	result := f.exec(`{ posts(page: 1) { currentPage totalPages totalItems posts { title } } }`, f.authed())
	page := dataField(t, result, "posts")
	if page["currentPage"] != 1 || page["totalPages"] != 2 || page["totalItems"] != 3 {
		t.Fatalf("unexpected page meta: %v", page)
	}
	items, _ := page["posts"].([]interface{})
	if len(items) != service.PageSize {
		t.Fatalf("expected %d posts, got %d", service.PageSize, len(items))
	}
	first, _ := items[0].(map[string]interface{})
	if first["title"] != "Post number 3" {
		t.Fatalf("expected newest first, got %v", first["title"])
	}
}

func TestSchema_UpdatePost_Forbidden(t *testing.T) {
	f := newSchemaFixture(t)
	post, err := f.feed.CreatePost(context.Background(), ports.CreatePostInput{
		Title: "Hello feed", Content: "body", UserID: f.ownerID,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	intruder, err := f.users.Create(context.Background(), &domain.User{
		Name: "Mallory", Email: "mallory@example.com",
	})
	if err != nil {
		t.Fatalf("seed intruder: %v", err)
	}

	query := fmt.Sprintf(`mutation {
		updatePost(id: %q, postInput: {title: "Taken over", content: "mine now"}) { _id }
	}`, post.ID)
	result := f.exec(query, service.Identity{State: service.IdentityAuthenticated, UserID: intruder.ID})
	if status := firstErrorStatus(t, result); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestSchema_DeletePost_CleansUpAsset(t *testing.T) {
	f := newSchemaFixture(t)
	post, err := f.feed.CreatePost(context.Background(), ports.CreatePostInput{
		Title: "Hello feed", Content: "body", ImagePath: "/image/cat-1.png", UserID: f.ownerID,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	query := fmt.Sprintf(`mutation { deletePost(postId: %q) }`, post.ID)
	result := f.exec(query, f.authed())
	if len(result.Errors) != 0 {
		t.Fatalf("deletePost failed: %v", result.Errors)
	}
	data, _ := result.Data.(map[string]interface{})
	if data["deletePost"] != true {
		t.Fatalf("expected true, got %v", data["deletePost"])
	}

	// Asset cleanup runs on this surface the same as on the resource surface.
	if len(f.store.removed) != 1 || f.store.removed[0] != "cat-1.png" {
		t.Fatalf("expected asset reclaimed, got %v", f.store.removed)
	}

	owner, _ := f.users.FindByID(context.Background(), f.ownerID)
	if len(owner.Posts) != 0 {
		t.Fatalf("post id not pruned from owner set: %v", owner.Posts)
	}
}

func TestSchema_UserPostsExpansion(t *testing.T) {
	f := newSchemaFixture(t)
	for i := 1; i <= 2; i++ {
		_, err := f.feed.CreatePost(context.Background(), ports.CreatePostInput{
			Title: fmt.Sprintf("Post number %d", i), Content: "body", UserID: f.ownerID,
		})
		if err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	result := f.exec(`{ user { _id status posts { title } } }`, f.authed())
	user := dataField(t, result, "user")
	posts, _ := user["posts"].([]interface{})
	if len(posts) != 2 {
		t.Fatalf("expected 2 expanded posts, got %v", user["posts"])
	}
}

func TestSchema_UpdateStatus(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.exec(`mutation { updateStatus(status: "hacking away") { status } }`, f.authed())
	user := dataField(t, result, "updateStatus")
	if user["status"] != "hacking away" {
		t.Fatalf("unexpected status: %v", user["status"])
	}
}
