package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads .env (when present), the process environment and, if
// PARAMETER_STORE_PATH is set, the parameters stored under that path.
func Load(ctx context.Context) (map[string]string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	cfg := New()
	path := GetString(cfg, "PARAMETER_STORE_PATH", "")
	if path == "" {
		return cfg, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	n, err := OverlayParameters(ctx, ssm.NewFromConfig(awsCfg), path, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("parameters", n).Msg("loaded parameter store overlay")
	return cfg, nil
}

// OverlayParameters copies every parameter below path into cfg. Keys are the
// parameter name relative to path with slashes turned into underscores, so
// /portfolio/prod/db/password becomes DB_PASSWORD. Values already present in
// cfg are left alone so the environment can override a stored secret locally.
func OverlayParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, path string, cfg map[string]string) (int, error) {
	prefix := strings.TrimSuffix(path, "/") + "/"
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	applied := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, fmt.Errorf("read parameters under %s: %w", path, err)
		}
		for _, p := range page.Parameters {
			key := parameterKey(prefix, aws.ToString(p.Name))
			if key == "" {
				continue
			}
			if existing, ok := cfg[key]; ok && existing != "" {
				continue
			}
			cfg[key] = aws.ToString(p.Value)
			applied++
		}
	}
	return applied, nil
}

func parameterKey(prefix, name string) string {
	name = strings.TrimPrefix(name, prefix)
	name = strings.Trim(name, "/")
	return strings.ToUpper(strings.ReplaceAll(name, "/", "_"))
}
