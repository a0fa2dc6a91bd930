package pagecontent

import "github.com/goliatone/go-pagecontent/internal/runtimeconfig"

var (
	ErrResolverTimeoutInvalid     = runtimeconfig.ErrResolverTimeoutInvalid
	ErrResolverRootRequired       = runtimeconfig.ErrResolverRootRequired
	ErrSourceCharsetUnknown       = runtimeconfig.ErrSourceCharsetUnknown
	ErrMarkdownExtensionUnknown   = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLinkPrefixSeparatorInvalid = runtimeconfig.ErrLinkPrefixSeparatorInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ResolverConfig = runtimeconfig.ResolverConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
