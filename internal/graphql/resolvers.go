package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/feedwire/feed-service/internal/core/domain"
	"github.com/feedwire/feed-service/internal/core/ports"
	"github.com/feedwire/feed-service/internal/core/service"
)

// requireAuth applies this surface's authentication policy: the soft gate
// upstream never rejects, so every operation that needs an identity checks
// the attached marker itself.
func requireAuth(p graphql.ResolveParams) (string, error) {
	identity := identityFrom(p.Context)
	if identity.State != service.IdentityAuthenticated {
		return "", domain.ErrUnauthenticated
	}
	return identity.UserID, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func (r *Resolvers) login(p graphql.ResolveParams) (interface{}, error) {
	token, userID, err := r.auth.LogIn(p.Context, stringArg(p, "email"), stringArg(p, "password"))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token": token, "userId": userID}, nil
}

func (r *Resolvers) createUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	name, _ := input["name"].(string)
	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	return r.auth.SignUp(p.Context, ports.SignUpInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

func (r *Resolvers) user(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	return r.auth.GetUser(p.Context, userID)
}

func (r *Resolvers) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}
	return r.auth.UpdateStatus(p.Context, userID, stringArg(p, "status"))
}

func (r *Resolvers) post(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}
	return r.feed.GetPost(p.Context, stringArg(p, "postId"))
}

func (r *Resolvers) posts(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p); err != nil {
		return nil, err
	}

	page, _ := p.Args["page"].(int)
	return r.feed.ListPosts(p.Context, page)
}

func (r *Resolvers) createPost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	input, _ := p.Args["postInput"].(map[string]interface{})
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)
	imageURL, _ := input["imageUrl"].(string)

	return r.feed.CreatePost(p.Context, ports.CreatePostInput{
		Title:     title,
		Content:   content,
		ImagePath: imageURL,
		UserID:    userID,
	})
}

func (r *Resolvers) updatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	input, _ := p.Args["postInput"].(map[string]interface{})
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)
	imageURL, _ := input["imageUrl"].(string)

	return r.feed.UpdatePost(p.Context, ports.UpdatePostInput{
		PostID:    stringArg(p, "id"),
		UserID:    userID,
		Title:     title,
		Content:   content,
		ImagePath: imageURL,
	})
}

func (r *Resolvers) deletePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireAuth(p)
	if err != nil {
		return nil, err
	}

	if err := r.feed.DeletePost(p.Context, stringArg(p, "postId"), userID); err != nil {
		return nil, err
	}
	return true, nil
}

// resolveCreator loads the full owning user for a post's creator field, like
// the resource surface's populated creator reference.
func (r *Resolvers) resolveCreator(p graphql.ResolveParams) (interface{}, error) {
	post, ok := postFrom(p.Source)
	if !ok {
		return nil, nil
	}

	user, err := r.auth.GetUser(p.Context, post.Creator.ID)
	if err != nil {
		// The denormalized reference still renders a name when the owner
		// document is unreachable.
		return &domain.User{ID: post.Creator.ID, Name: post.Creator.Name}, nil
	}
	return user, nil
}

// resolveUserPosts expands the owner's post-id set into full posts.
func (r *Resolvers) resolveUserPosts(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*domain.User)
	if !ok {
		return []domain.Post{}, nil
	}

	posts := make([]domain.Post, 0, len(user.Posts))
	for _, id := range user.Posts {
		post, err := r.feed.GetPost(p.Context, id)
		if err != nil {
			continue
		}
		posts = append(posts, *post)
	}
	return posts, nil
}
