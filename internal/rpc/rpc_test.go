package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/oggyb/skillswap/internal/domain"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_PlainMessage(t *testing.T) {
	c := jsonCodec{}

	name := "Ana"
	in := &UpsertProfileRequest{Profile: domain.ProfileInput{
		DisplayName:    &name,
		TeachingSkills: []domain.Skill{{Name: "Go", Level: domain.LevelExpert}},
	}}
	b, err := c.Marshal(in)
	require.NoError(t, err)
	// untouched lists travel as null so the server keeps the stored sets
	assert.JSONEq(t, `{"profile":{
		"displayName":"Ana",
		"teachingSkills":[{"name":"Go","level":"expert"}],
		"learningSkills":null,
		"availability":null,
		"socialLinks":null
	}}`, string(b))

	var out UpsertProfileRequest
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, "Ana", *out.Profile.DisplayName)
	assert.Nil(t, out.Profile.LearningSkills)

	// empty body decodes to the zero message
	var empty WhoAmIRequest
	assert.NoError(t, c.Unmarshal(nil, &empty))

	assert.Error(t, c.Unmarshal([]byte("{"), &out))
}

func TestCodec_EmptyListClears(t *testing.T) {
	c := jsonCodec{}

	in := &UpsertProfileRequest{Profile: domain.ProfileInput{
		TeachingSkills: []domain.Skill{},
		SocialLinks:    []domain.SocialLink{},
	}}
	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"teachingSkills":[]`)

	var out UpsertProfileRequest
	require.NoError(t, c.Unmarshal(b, &out))
	require.NotNil(t, out.Profile.TeachingSkills)
	assert.Empty(t, out.Profile.TeachingSkills)
	require.NotNil(t, out.Profile.SocialLinks)
	assert.Empty(t, out.Profile.SocialLinks)
	assert.Nil(t, out.Profile.LearningSkills)
	assert.Nil(t, out.Profile.Availability)

	// a missing list is the same as null
	var partial UpsertProfileRequest
	require.NoError(t, c.Unmarshal([]byte(`{"profile":{"bio":"hi"}}`), &partial))
	assert.Nil(t, partial.Profile.TeachingSkills)
	assert.Equal(t, "hi", *partial.Profile.Bio)
}

func TestCodec_ProtoMessageUsesProtojson(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SERVING"}`, string(b))

	var out healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, out.GetStatus())
}

func TestBearerToken(t *testing.T) {
	assert.Empty(t, BearerToken(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(AuthorizationHeader, "Bearer abc.def"))
	assert.Equal(t, "abc.def", BearerToken(ctx))

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs(AuthorizationHeader, "Basic xyz"))
	assert.Empty(t, BearerToken(ctx))

	out := WithToken(context.Background(), "tok")
	md, ok := metadata.FromOutgoingContext(out)
	require.True(t, ok)
	assert.Equal(t, []string{"Bearer tok"}, md.Get(AuthorizationHeader))
}

func TestServiceDescs(t *testing.T) {
	assert.Equal(t, "/skillswap.v1.MatchService/FindMatches", MethodFindMatches)
	assert.Equal(t, "skillswap.v1.ConnectionService", ConnectionServiceDesc.ServiceName)
	assert.Len(t, ConnectionServiceDesc.Methods, 6)
	assert.Len(t, AccountServiceDesc.Methods, 3)

	// no .proto sources back these descriptors
	for _, d := range []*grpc.ServiceDesc{&AccountServiceDesc, &CatalogServiceDesc, &ProfileServiceDesc, &MatchServiceDesc, &ConnectionServiceDesc} {
		assert.Nil(t, d.Metadata, d.ServiceName)
	}
}
