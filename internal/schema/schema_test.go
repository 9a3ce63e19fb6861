package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSDL = `
type Query {
  post(id: ID!): Post
  posts(first: Int = 10): [Post!]
}

type Mutation {
  createPost(title: String!): Post!
  createComment(postId: ID!, body: String): Comment
}

type Post {
  id: ID!
  title: String!
  comments: [Comment!]!
}

type Comment {
  id: ID!
  body: String
}

enum Visibility { PUBLIC PRIVATE }

union Feed = Post | Comment
`

func TestBuildFromSDL(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	require.Equal(t, "Query", s.QueryType)
	require.Equal(t, "Mutation", s.MutationType)
	require.Empty(t, s.SubscriptionType)
	require.NotNil(t, s.GetQueryType())
	require.NotNil(t, s.GetMutationType())

	post := s.Types["Post"]
	require.NotNil(t, post)
	require.Equal(t, TypeKindObject, post.Kind)

	id := post.GetField("id")
	require.NotNil(t, id)
	require.True(t, IsNonNull(id.Type))
	require.Equal(t, "ID", GetNamedType(id.Type))

	comments := post.GetField("comments")
	require.NotNil(t, comments)
	require.True(t, IsNonNull(comments.Type))
	require.True(t, IsList(comments.Type))
	require.Equal(t, "[Comment!]!", comments.Type.String())
}

func TestBuildFromSDLArguments(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	posts := s.GetQueryType().GetField("posts")
	require.NotNil(t, posts)
	first := posts.GetArgument("first")
	require.NotNil(t, first)
	require.Equal(t, 10, first.DefaultValue)

	create := s.GetMutationType().GetField("createPost")
	require.NotNil(t, create)
	title := create.GetArgument("title")
	require.NotNil(t, title)
	require.True(t, IsNonNull(title.Type))
}

func TestBuildFromSDLEnumAndUnion(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	vis := s.Types["Visibility"]
	require.NotNil(t, vis)
	require.Equal(t, TypeKindEnum, vis.Kind)
	require.Equal(t, []string{"PUBLIC", "PRIVATE"}, vis.EnumValues)

	feed := s.Types["Feed"]
	require.NotNil(t, feed)
	require.Equal(t, TypeKindUnion, feed.Kind)
	require.Equal(t, []string{"Post", "Comment"}, feed.PossibleTypes)
}

func TestBuiltinDirectives(t *testing.T) {
	s, err := BuildFromSDL(`type Query { ok: Boolean }`)
	require.NoError(t, err)

	for _, name := range []string{"skip", "include", "export"} {
		require.Contains(t, s.Directives, name)
	}
	export := s.Directives["export"]
	require.Equal(t, []string{"FIELD"}, export.Locations)
	require.NotNil(t, export.Arguments[0])
}

func TestBuildFromSDLMissingQueryType(t *testing.T) {
	_, err := BuildFromSDL(`type Mutation { noop: Boolean }`)
	require.Error(t, err)
}
