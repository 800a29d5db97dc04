// Package config contains the definition of the application config structure
// and the logic required to load it.
//
// Settings come from three places, in increasing precedence: built-in
// defaults, SEKR8S_* environment variables, and command-line flags bound by
// the root command.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Viper keys. The root command binds its persistent flags to these.
const (
	// KeyKubectl is the path to the cluster tool binary.
	KeyKubectl = "kubectl"
	// KeyNamespace is the namespace passed to the cluster tool.
	KeyNamespace = "namespace"
	// KeyDebug enables debug logging.
	KeyDebug = "debug"
)

// DefaultKubectl is used when neither flag nor environment override the
// cluster tool binary.
const DefaultKubectl = "kubectl"

const envPrefix = "SEKR8S"

func init() {
	viper.SetDefault(KeyKubectl, DefaultKubectl)
	viper.SetDefault(KeyNamespace, "")
	viper.SetDefault(KeyDebug, false)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Config represents the configuration of the application.
type Config struct {
	// Kubectl is the cluster tool binary to invoke.
	Kubectl string
	// Namespace is the namespace to operate in; empty means the tool's
	// current context default.
	Namespace string
	// Debug enables debug logging.
	Debug bool
}

// Load returns the effective configuration.
func Load() *Config {
	return &Config{
		Kubectl:   viper.GetString(KeyKubectl),
		Namespace: viper.GetString(KeyNamespace),
		Debug:     viper.GetBool(KeyDebug),
	}
}
