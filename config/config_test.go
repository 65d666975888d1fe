package config

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "8081",
		"BAD_INT": "eight",
		"DEBUG":   "true",
		"ORIGINS": "http://a.test, ,http://b.test",
		"EMPTY":   "",
	}

	assert.Equal(t, 8081, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 7, GetInt(nil, "PORT", 7))
	assert.True(t, GetBool(cfg, "DEBUG", false))
	assert.False(t, GetBool(cfg, "MISSING", false))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetStrings(cfg, "ORIGINS"))
	assert.Empty(t, GetStrings(cfg, "MISSING"))
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment(map[string]string{}))
	assert.True(t, IsDevelopment(map[string]string{"ENV": "Local"}))
	assert.False(t, IsDevelopment(map[string]string{"ENV": "production"}))
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestOverlayParameters(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{
			{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("stored-secret")},
			{Name: aws.String("/portfolio/prod/db/password"), Value: aws.String("pw")},
		},
		{
			{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("9000")},
		},
	}}
	cfg := map[string]string{"PORT": "8081"}

	n, err := OverlayParameters(context.Background(), client, "/portfolio/prod", cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "stored-secret", cfg["JWT_SECRET"])
	assert.Equal(t, "pw", cfg["DB_PASSWORD"])
	assert.Equal(t, "8081", cfg["PORT"], "environment wins over stored parameters")
}
