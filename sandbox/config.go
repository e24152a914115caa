package sandbox

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// FromEnv builds a policy from environment configuration. All keys use
// the SOVEREIGN_ prefix:
//
//	SOVEREIGN_CAPS             comma list of capability tags
//	SOVEREIGN_ALLOWED_COMMANDS comma list of whitelisted commands
//	SOVEREIGN_PROTECTED_PATHS  comma list of extra protected patterns
//	SOVEREIGN_ROOT             working-directory root
//	SOVEREIGN_MAX_OUTPUT_KB    captured output limit
//	SOVEREIGN_TIMEOUT_SECS     effectful operation timeout
//	SOVEREIGN_ALLOW_LOCAL_EXEC enable subprocess execution
//
// Absent keys fall back to deny-all defaults.
func FromEnv(logger zerolog.Logger) (*Policy, error) {
	v := viper.New()
	v.SetEnvPrefix("sovereign")
	v.AutomaticEnv()
	v.SetDefault("caps", "")
	v.SetDefault("allowed_commands", "echo")
	v.SetDefault("protected_paths", "")
	v.SetDefault("root", "")
	v.SetDefault("max_output_kb", DefaultMaxOutputKB)
	v.SetDefault("timeout_secs", int(DefaultTimeout/time.Second))
	v.SetDefault("allow_local_exec", false)

	return New(Config{
		Capabilities:    splitList(v.GetString("caps")),
		AllowedCommands: splitList(v.GetString("allowed_commands")),
		ProtectedPaths:  splitList(v.GetString("protected_paths")),
		Root:            v.GetString("root"),
		MaxOutputKB:     v.GetInt("max_output_kb"),
		Timeout:         time.Duration(v.GetInt("timeout_secs")) * time.Second,
		AllowLocalExec:  v.GetBool("allow_local_exec"),
		Logger:          logger,
	})
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
