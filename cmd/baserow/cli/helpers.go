package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cedricziel/baserow-go"
)

// newClient builds an API client from the resolved configuration.
func newClient() *baserow.Baserow {
	cfg := baserow.NewConfig().
		BaseURL(viper.GetString("base_url")).
		APIKey(viper.GetString("token")).
		Email(viper.GetString("email")).
		Password(viper.GetString("password")).
		Logger(newLogger()).
		Build()
	return baserow.NewClient(cfg)
}

// authedClient returns a client ready to make requests: logged in via
// TokenAuth when credentials are configured, otherwise carrying the
// database token. A login beats a plain token because the JWT pair
// unlocks the full API surface.
func authedClient(ctx context.Context) (*baserow.Baserow, error) {
	client := newClient()
	cfg := client.Config()
	if cfg.Email != "" && cfg.Password != "" {
		return client.TokenAuth(ctx)
	}
	return client, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") || os.Getenv("BASEROW_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseTableID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid table id %q", arg)
	}
	return id, nil
}

// render writes v to w as JSON (default) or YAML.
func render(w io.Writer, v any, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
